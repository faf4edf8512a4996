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

// Package tileset draws sprite sheets of flat-coloured shapes and road
// pieces.
//
// A sheet has one column per glyph in [shapes.Names] and one row per
// colour in [Palette].  Each tile is [shapes.TileSize] pixels square and
// is transparent wherever no glyph is drawn.
package tileset

//go:generate go run ./shapes/genpdf

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/tileset/raster"
	"seehuhn.de/go/tileset/shapes"
)

// ErrUnknownShape is returned when a glyph name is not in the catalog.
var ErrUnknownShape = errors.New("unknown shape")

// NewCanvas allocates a fully transparent sheet with room for the given
// number of tile columns and rows.
func NewCanvas(columns, rows int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, columns*shapes.TileSize, rows*shapes.TileSize))
}

// Painter draws glyphs into tiles.  A Painter reuses its buffers between
// calls and is not safe for concurrent use.
type Painter struct {
	r    *raster.Rasterizer
	mask *image.Alpha
}

// NewPainter returns a new Painter.
func NewPainter() *Painter {
	tile := image.Rect(0, 0, shapes.TileSize, shapes.TileSize)
	return &Painter{
		r:    raster.NewRasterizer(tileClip),
		mask: image.NewAlpha(tile),
	}
}

// tileClip is the clip rectangle of a single tile, in tile coordinates.
var tileClip = rect.Rect{URx: shapes.TileSize, URy: shapes.TileSize}

// Draw paints the named glyph in colour c into the tile whose top-left
// corner is at origin.  Pixels outside the tile are never modified.
//
// If the name is unknown, dst is left unchanged and an error wrapping
// ErrUnknownShape is returned.
func (p *Painter) Draw(dst xdraw.Image, name string, origin image.Point, c color.Color) error {
	outline, ok := shapes.Lookup(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownShape, name)
	}

	clear(p.mask.Pix)
	p.r.Reset(tileClip)
	p.r.FillNonZero(outline, func(y, xMin int, coverage []float32) {
		row := p.mask.Pix[y*p.mask.Stride+xMin:]
		for i, cov := range coverage {
			row[i] = byte(max(0, min(255, int(cov*256))))
		}
	})

	tile := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(shapes.TileSize, shapes.TileSize))}
	xdraw.DrawMask(dst, tile, image.NewUniform(c), image.Point{}, p.mask, image.Point{}, xdraw.Over)
	return nil
}

// Generator lays out sheets.
type Generator struct {
	// Shapes lists the glyphs, one per column.
	Shapes []string

	// Palette lists the colours, one per row.
	Palette []color.NRGBA

	// Log receives progress messages.  If this is nil, nothing is logged.
	Log *zap.Logger
}

// NewGenerator returns a Generator for the full glyph catalog and the
// standard palette.
func NewGenerator(log *zap.Logger) *Generator {
	return &Generator{
		Shapes:  shapes.Names,
		Palette: Palette,
		Log:     log,
	}
}

// Generate draws the sheet.  Colours run down the rows, glyphs across the
// columns.  Generating is deterministic: the same Generator always
// produces the same pixels.
func (g *Generator) Generate() (*image.NRGBA, error) {
	log := g.Log
	if log == nil {
		log = zap.NewNop()
	}

	sheet := NewCanvas(len(g.Shapes), len(g.Palette))
	log.Debug("canvas allocated",
		zap.Int("width", sheet.Rect.Dx()),
		zap.Int("height", sheet.Rect.Dy()))

	p := NewPainter()
	for row, c := range g.Palette {
		for col, name := range g.Shapes {
			origin := image.Pt(col*shapes.TileSize, row*shapes.TileSize)
			if err := p.Draw(sheet, name, origin, c); err != nil {
				return nil, fmt.Errorf("tile (%d,%d): %w", col, row, err)
			}
		}
		log.Debug("row drawn", zap.Int("row", row), zap.Stringer("colour", hexColour(c)))
	}
	return sheet, nil
}

// hexColour formats a colour as #rrggbb.
type hexColour color.NRGBA

func (c hexColour) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
