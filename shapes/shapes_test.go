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

package shapes

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/tileset/raster"
)

func TestCatalog(t *testing.T) {
	if len(Names) != 19 {
		t.Fatalf("expected 19 glyphs, got %d", len(Names))
	}
	seen := make(map[string]bool)
	for _, name := range Names {
		if seen[name] {
			t.Errorf("duplicate glyph %q", name)
		}
		seen[name] = true

		p, ok := Lookup(name)
		if !ok {
			t.Errorf("glyph %q not found", name)
			continue
		}
		if len(p.Cmds) == 0 {
			t.Errorf("glyph %q is empty", name)
		}
		for _, c := range p.Coords {
			if c.X < 0 || c.X > TileSize || c.Y < 0 || c.Y > TileSize {
				t.Errorf("glyph %q: point %v outside the tile", name, c)
			}
		}
	}
	if len(builders) != len(Names) {
		t.Errorf("%d builders for %d names", len(builders), len(Names))
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("Road-4Way"); !ok {
		t.Error("lookup is case sensitive")
	}
	if p, ok := Lookup("spiral"); ok || p != nil {
		t.Errorf("unknown glyph: got %v, %t", p, ok)
	}

	// every call returns a fresh path
	a, _ := Lookup("square")
	b, _ := Lookup("square")
	a.LineTo(vec.Vec2{X: 1, Y: 1})
	if len(a.Cmds) == len(b.Cmds) {
		t.Error("paths are shared between calls")
	}
}

func TestStarVertices(t *testing.T) {
	pts := StarVertices(centre, Size/2, Size/4, 5)
	if len(pts) != 10 {
		t.Fatalf("expected 10 vertices, got %d", len(pts))
	}

	top := vec.Vec2{X: 32, Y: 8}
	if pts[0].Sub(top).Length() > 1e-9 {
		t.Errorf("first vertex: expected %v, got %v", top, pts[0])
	}
	for i, pt := range pts {
		want := 24.0
		if i%2 == 1 {
			want = 12
		}
		if r := pt.Sub(centre).Length(); math.Abs(r-want) > 1e-9 {
			t.Errorf("vertex %d: radius %g, expected %g", i, r, want)
		}
	}

	// The outline turns one way at the points and the other way at the
	// inner corners, so it is not the convex decagon.
	for i := range pts {
		a := pts[(i+len(pts)-1)%len(pts)]
		b := pts[i]
		c := pts[(i+1)%len(pts)]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if (i%2 == 0) != (cross > 0) {
			t.Errorf("vertex %d: unexpected turn direction %g", i, cross)
		}
	}
}

func TestPolygonVertices(t *testing.T) {
	for _, sides := range []int{5, 6, 8} {
		pts := PolygonVertices(centre, Size/2, sides)
		if len(pts) != sides {
			t.Errorf("%d sides: got %d vertices", sides, len(pts))
			continue
		}
		if math.Abs(pts[0].X-32) > 1e-9 || math.Abs(pts[0].Y-8) > 1e-9 {
			t.Errorf("%d sides: first vertex %v is not at the top", sides, pts[0])
		}
		for i, pt := range pts {
			if r := pt.Sub(centre).Length(); math.Abs(r-24) > 1e-9 {
				t.Errorf("%d sides, vertex %d: radius %g", sides, i, r)
			}
		}
		edge := pts[1].Sub(pts[0]).Length()
		want := 2 * 24 * math.Sin(math.Pi/float64(sides))
		if math.Abs(edge-want) > 1e-9 {
			t.Errorf("%d sides: edge length %g, expected %g", sides, edge, want)
		}
	}
}

// coverage rasterizes the named glyph into a TileSize×TileSize array.
func coverage(t *testing.T, name string) [][]float32 {
	t.Helper()
	p, ok := Lookup(name)
	if !ok {
		t.Fatalf("glyph %q not found", name)
	}
	res := make([][]float32, TileSize)
	for i := range res {
		res[i] = make([]float32, TileSize)
	}
	r := raster.NewRasterizer(rect.Rect{URx: TileSize, URy: TileSize})
	r.FillNonZero(p, func(y, xMin int, cov []float32) {
		copy(res[y][xMin:], cov)
	})
	return res
}

// edgeProfile returns which pixels along one tile edge are painted.
func edgeProfile(cov [][]float32, side exits) [TileSize]bool {
	var res [TileSize]bool
	for i := range TileSize {
		var c float32
		switch side {
		case north:
			c = cov[0][i]
		case south:
			c = cov[TileSize-1][i]
		case west:
			c = cov[i][0]
		case east:
			c = cov[i][TileSize-1]
		}
		res[i] = c > 0.5
	}
	return res
}

// TestRoadEdges checks that every road piece meets each tile edge either
// not at all, or with a stroke of exactly RoadWidth pixels in the middle
// of the edge.  This makes all road tiles fit together.
func TestRoadEdges(t *testing.T) {
	var stroke [TileSize]bool
	for i := roadOffset; i < roadOffset+RoadWidth; i++ {
		stroke[i] = true
	}
	var empty [TileSize]bool

	cases := map[string]exits{
		"road-h":    east | west,
		"road-v":    north | south,
		"road-ne":   north | east,
		"road-nw":   north | west,
		"road-se":   south | east,
		"road-sw":   south | west,
		"road-n-t":  east | west | north,
		"road-s-t":  east | west | south,
		"road-e-t":  north | south | east,
		"road-w-t":  north | south | west,
		"road-4way": north | east | south | west,
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			cov := coverage(t, name)
			for _, side := range []exits{north, east, south, west} {
				want := empty
				if e&side != 0 {
					want = stroke
				}
				if got := edgeProfile(cov, side); got != want {
					t.Errorf("edge %d: got %v", side, got)
				}
			}
			// the centre is always painted, and fully
			for y := roadOffset; y < roadOffset+RoadWidth; y++ {
				for x := roadOffset; x < roadOffset+RoadWidth; x++ {
					if cov[y][x] != 1 {
						t.Fatalf("centre pixel (%d,%d): coverage %g", x, y, cov[y][x])
					}
				}
			}
		})
	}
}

// TestRoadCrisp checks that road pieces have no partially covered pixels.
func TestRoadCrisp(t *testing.T) {
	for _, name := range Names[8:] {
		cov := coverage(t, name)
		for y, row := range cov {
			for x, c := range row {
				if c != 0 && c != 1 {
					t.Errorf("%s: pixel (%d,%d) has coverage %g", name, x, y, c)
				}
			}
		}
	}
}

func TestShapeAreas(t *testing.T) {
	area := func(name string) float64 {
		var s float64
		for _, row := range coverage(t, name) {
			for _, c := range row {
				s += float64(c)
			}
		}
		return s
	}

	cases := []struct {
		name string
		want float64
		tol  float64
	}{
		{"square", Size * Size, 1e-3},
		{"triangle", Size * Size / 2, 0.05},
		{"diamond", Size * Size / 2, 0.05},
		{"circle", math.Pi * 24 * 24, 40}, // flattened curves lose a sliver
		{"hexagon", 3 * math.Sqrt(3) / 2 * 24 * 24, 0.05},
		{"road-h", TileSize * RoadWidth, 1e-3},
		{"road-4way", 2*TileSize*RoadWidth - RoadWidth*RoadWidth, 1e-3},
		{"road-ne", 2*(TileSize/2+RoadWidth/2)*RoadWidth - RoadWidth*RoadWidth, 1e-3},
		{"road-n-t", TileSize*RoadWidth + (TileSize/2-RoadWidth/2)*RoadWidth, 1e-3},
	}
	for _, tc := range cases {
		if got := area(tc.name); math.Abs(got-tc.want) > tc.tol {
			t.Errorf("%s: area %g, expected %g", tc.name, got, tc.want)
		}
	}
}

// TestStarFill checks that the star is filled as a star, and not as its
// convex hull.
func TestStarFill(t *testing.T) {
	cov := coverage(t, "star")
	if cov[32][32] < 1-1e-5 {
		t.Errorf("centre not filled: %g", cov[32][32])
	}

	// between two points, just outside the inner radius
	pts := StarVertices(centre, Size/2, Size/4, 5)
	notch := pts[1].Sub(centre).Mul(1.4).Add(centre)
	if c := cov[int(notch.Y)][int(notch.X)]; c > 1e-5 {
		t.Errorf("notch at %v is covered: %g", notch, c)
	}
}

func BenchmarkLookup(b *testing.B) {
	var p *path.Data
	for b.Loop() {
		for _, name := range Names {
			p, _ = Lookup(name)
		}
	}
	_ = p
}
