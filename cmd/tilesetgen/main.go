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

// Command tilesetgen writes the sprite sheet "tileset.png" into the
// current directory.  It takes no arguments.
package main

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"seehuhn.de/go/tileset"
	"seehuhn.de/go/tileset/internal/logger"
)

const outputName = "tileset.png"

func main() {
	logger.Init("info")
	defer logger.Sync()

	fname, err := run(".", logger.Log)
	if err != nil {
		logger.Error("error generating tileset", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("tileset generated successfully", zap.String("path", fname))
}

// run generates the sheet and stores it in dir.  The absolute path of
// the new file is returned.
func run(dir string, log *zap.Logger) (string, error) {
	fname, err := filepath.Abs(filepath.Join(dir, outputName))
	if err != nil {
		return "", err
	}

	sheet, err := tileset.NewGenerator(log).Generate()
	if err != nil {
		return "", err
	}
	if err := tileset.WritePNG(fname, sheet); err != nil {
		return "", err
	}
	return fname, nil
}
