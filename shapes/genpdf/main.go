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

// Command genpdf generates reference images for the glyph tests.
// Each glyph is written to a PDF file, which Ghostscript then renders to
// a grayscale PNG.  Run from the module root directory.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/tileset/shapes"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, name := range shapes.Names {
		pdfPath := filepath.Join(refDir, name+".pdf")
		pngPath := filepath.Join(refDir, name+".png")

		if err := generatePDF(name, pdfPath); err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}
		if err := renderPNG(pdfPath, pngPath); err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}
	}
}

func generatePDF(name, pdfPath string) error {
	outline, ok := shapes.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown glyph")
	}

	// one point per pixel
	const T = shapes.TileSize
	paper := &pdf.Rectangle{URx: T, URy: T}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Coverage is white on black: 0 outside, 255 fully inside.
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, T, T)
	page.Fill()

	// glyphs use tile coordinates with y pointing down
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, T})

	page.SetFillColor(color.DeviceGray(1))
	for cmd, pts := range outline.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
	page.Fill()

	return page.Close()
}

// renderPNG converts a single page PDF into an 8-bit grayscale PNG,
// using 4x4 supersampling for anti-aliasing.
func renderPNG(pdfPath, pngPath string) error {
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
