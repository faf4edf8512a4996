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

// Package shapes defines the tile glyphs of the sprite sheet.
//
// Every glyph is a path in tile coordinates: the origin is the top-left
// corner of the tile, y grows downwards, and the tile covers
// [0, TileSize] × [0, TileSize].  All glyphs are meant to be filled using
// the nonzero winding rule.
package shapes

import (
	"math"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

const (
	// TileSize is the width and height of a tile in pixels.
	TileSize = 64

	// Padding is the distance between the basic shapes and the tile edges.
	Padding = 8

	// Size is the extent of the basic shapes.
	Size = TileSize - 2*Padding

	// RoadWidth is the stroke width of all road glyphs. It is shared by
	// all road tiles, so that neighbouring tiles join without a seam.
	RoadWidth = 20
)

// Names lists the glyphs in sheet order.
var Names = []string{
	"circle", "square", "triangle", "star", "hexagon", "pentagon", "diamond", "octagon",
	"road-h", "road-v", "road-ne", "road-nw", "road-se", "road-sw",
	"road-n-t", "road-s-t", "road-e-t", "road-w-t", "road-4way",
}

// centre is the midpoint of a tile.
var centre = vec.Vec2{X: TileSize / 2, Y: TileSize / 2}

var builders = map[string]func(p *path.Data){
	"circle":   circle,
	"square":   square,
	"triangle": triangle,
	"star": func(p *path.Data) {
		polygon(p, StarVertices(centre, Size/2, Size/4, 5))
	},
	"hexagon": func(p *path.Data) {
		polygon(p, PolygonVertices(centre, Size/2, 6))
	},
	"pentagon": func(p *path.Data) {
		polygon(p, PolygonVertices(centre, Size/2, 5))
	},
	"diamond": diamond,
	"octagon": func(p *path.Data) {
		polygon(p, PolygonVertices(centre, Size/2, 8))
	},

	"road-h":    road(east | west),
	"road-v":    road(north | south),
	"road-ne":   road(north | east),
	"road-nw":   road(north | west),
	"road-se":   road(south | east),
	"road-sw":   road(south | west),
	"road-n-t":  road(east | west | north),
	"road-s-t":  road(east | west | south),
	"road-e-t":  road(north | south | east),
	"road-w-t":  road(north | south | west),
	"road-4way": road(north | east | south | west),
}

// Lookup returns the outline of the named glyph.  Names are not case
// sensitive.  If the name is unknown, ok is false.
func Lookup(name string) (p *path.Data, ok bool) {
	build, ok := builders[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	p = &path.Data{}
	build(p)
	return p, true
}

// circle adds the disk inscribed in the padded square, as four cubic
// Bézier arcs.
func circle(p *path.Data) {
	const r = Size / 2
	k := r * 4 * (math.Sqrt2 - 1) / 3
	pt := func(dx, dy float64) vec.Vec2 {
		return vec.Vec2{X: centre.X + dx, Y: centre.Y + dy}
	}
	p.MoveTo(pt(r, 0)).
		CubeTo(pt(r, k), pt(k, r), pt(0, r)).
		CubeTo(pt(-k, r), pt(-r, k), pt(-r, 0)).
		CubeTo(pt(-r, -k), pt(-k, -r), pt(0, -r)).
		CubeTo(pt(k, -r), pt(r, -k), pt(r, 0)).
		Close()
}

func square(p *path.Data) {
	rectangle(p, Padding, Padding, TileSize-Padding, TileSize-Padding)
}

func triangle(p *path.Data) {
	polygon(p, []vec.Vec2{
		{X: centre.X, Y: Padding},
		{X: Padding, Y: TileSize - Padding},
		{X: TileSize - Padding, Y: TileSize - Padding},
	})
}

func diamond(p *path.Data) {
	polygon(p, []vec.Vec2{
		{X: centre.X, Y: Padding},
		{X: TileSize - Padding, Y: centre.Y},
		{X: centre.X, Y: TileSize - Padding},
		{X: Padding, Y: centre.Y},
	})
}

// StarVertices returns the corners of a star with the given number of
// points.  The corners alternate between the outer and the inner radius,
// starting with an outer corner straight above c.
func StarVertices(c vec.Vec2, outer, inner float64, points int) []vec.Vec2 {
	res := make([]vec.Vec2, 2*points)
	step := math.Pi / float64(points)
	for i := range res {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*step - math.Pi/2
		res[i] = vec.Vec2{X: c.X + r*math.Cos(angle), Y: c.Y + r*math.Sin(angle)}
	}
	return res
}

// PolygonVertices returns the corners of a regular polygon with
// circumradius r around c.  The first corner is straight above c.
func PolygonVertices(c vec.Vec2, r float64, sides int) []vec.Vec2 {
	res := make([]vec.Vec2, sides)
	for i := range res {
		angle := 2*math.Pi*float64(i)/float64(sides) - math.Pi/2
		res[i] = vec.Vec2{X: c.X + r*math.Cos(angle), Y: c.Y + r*math.Sin(angle)}
	}
	return res
}

// polygon adds a closed subpath through the given vertices.
func polygon(p *path.Data, pts []vec.Vec2) {
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	p.Close()
}

// rectangle adds the axis-parallel rectangle [x0, x1] × [y0, y1].
// All rectangles share one orientation, so that overlaps stay filled.
func rectangle(p *path.Data, x0, y0, x1, y1 float64) {
	polygon(p, []vec.Vec2{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	})
}
