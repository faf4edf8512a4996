// seehuhn.de/go/tileset - procedural sprite sheet generation
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tileset

import (
	"image"
	"image/png"
	"os"
)

// WriteError reports a failure to store a sheet.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return "writing " + e.Path + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WritePNG stores img in the named file, in PNG format.  An existing file
// is overwritten.  All errors are of type *WriteError.
func WritePNG(fname string, img image.Image) (err error) {
	defer func() {
		if err != nil {
			err = &WriteError{Path: fname, Err: err}
		}
	}()

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(f, img)
}
