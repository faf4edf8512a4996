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

// Package raster converts filled vector paths into anti-aliased pixel
// coverage.
//
// Coverage is the fraction of a pixel's area inside the path, from 0 to 1.
// Results are delivered one scanline at a time through an emit callback, so
// that the caller decides how coverage is composited.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// EmitFunc receives the coverage of pixels xMin, xMin+1, ... on scanline y.
// The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// segment is a non-horizontal line segment in device coordinates.
type segment struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // inverse slope, (x1-x0)/(y1-y0)
}

func (s *segment) top() float64    { return min(s.y0, s.y1) }
func (s *segment) bottom() float64 { return max(s.y0, s.y1) }

// xAt returns the x-coordinate of the segment's line at height y.
func (s *segment) xAt(y float64) float64 {
	return s.x0 + s.dxdy*(y-s.y0)
}

// Rasterizer fills paths. A single instance should be reused for many
// paths: its buffers grow as required and are never released, so that
// steady-state filling does not allocate.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip limits output to this device-space rectangle.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal deviation, in device pixels, between a curve
	// and the line segments used to approximate it. Must be positive.
	Flatness float64

	// bufferedLimit is the largest bounding box area (in pixels) which is
	// rasterized using full 2D buffers. Larger paths use an active
	// segment list and one scanline of buffers.
	bufferedLimit int

	segs    []segment
	active  []int
	cover   []float32 // signed height crossed per pixel; holds the output after resolving
	area    []float32 // cover weighted by the uncovered part of the pixel
	rowUsed []bool

	// device space bounding box of segs
	haveBox      bool
	boxX0, boxX1 float64
	boxY0, boxY1 float64
}

// NewRasterizer returns a Rasterizer which writes to the given clip
// rectangle. All other parameters start at their default values.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores all parameters to their defaults and sets a new clip
// rectangle. Buffer capacity is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.bufferedLimit = bufferedLimit

	r.segs = r.segs[:0]
	r.active = r.active[:0]
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.rowUsed = r.rowUsed[:0]
}

// FillNonZero fills p using the nonzero winding number rule.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.fill(p, nonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.fill(p, evenOdd, emit)
}

type fillRule int

const (
	nonZero fillRule = iota
	evenOdd
)

func (r *Rasterizer) fill(p *path.Data, rule fillRule, emit EmitFunc) {
	x0, x1, y0, y1, ok := r.buildSegments(p)
	if !ok {
		return
	}

	if (x1-x0)*(y1-y0) < r.bufferedLimit {
		r.fillBuffered(x0, x1, y0, y1, rule, emit)
	} else {
		r.fillActive(x0, x1, y0, y1, rule, emit)
	}
}

// buildSegments flattens p into device space segments. The returned pixel
// range covers all segments, intersected with the clip rectangle.
func (r *Rasterizer) buildSegments(p *path.Data) (x0, x1, y0, y1 int, ok bool) {
	r.segs = r.segs[:0]
	r.haveBox = false

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addLine(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addLine(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addLine(cur, start)
			}
			cur = start
		}
	}
	// open subpaths are closed implicitly
	if cur != start {
		r.addLine(cur, start)
	}

	if len(r.segs) == 0 {
		return 0, 0, 0, 0, false
	}

	x0 = max(int(math.Floor(r.boxX0)), int(r.Clip.LLx))
	x1 = min(int(math.Floor(r.boxX1))+1, int(r.Clip.URx))
	y0 = max(int(math.Floor(r.boxY0)), int(r.Clip.LLy))
	y1 = min(int(math.Floor(r.boxY1))+1, int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return x0, x1, y0, y1, true
}

// addLine records the segment from a to b, given in user space.
func (r *Rasterizer) addLine(a, b vec.Vec2) {
	m := r.CTM
	ax := m[0]*a.X + m[2]*a.Y + m[4]
	ay := m[1]*a.X + m[3]*a.Y + m[5]
	bx := m[0]*b.X + m[2]*b.Y + m[4]
	by := m[1]*b.X + m[3]*b.Y + m[5]

	dy := by - ay
	if math.Abs(dy) < horizontalThreshold {
		// horizontal segments never change the winding number
		return
	}
	r.segs = append(r.segs, segment{
		x0: ax, y0: ay,
		x1: bx, y1: by,
		dxdy: (bx - ax) / dy,
	})

	lx, hx := min(ax, bx), max(ax, bx)
	ly, hy := min(ay, by), max(ay, by)
	if !r.haveBox {
		r.boxX0, r.boxX1, r.boxY0, r.boxY1 = lx, hx, ly, hy
		r.haveBox = true
		return
	}
	r.boxX0 = min(r.boxX0, lx)
	r.boxX1 = max(r.boxX1, hx)
	r.boxY0 = min(r.boxY0, ly)
	r.boxY1 = max(r.boxY1, hy)
}

// deviceLength returns the device space length of the user space vector v,
// ignoring the translation part of the CTM.
func (r *Rasterizer) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

// flattenQuad approximates the quadratic Bézier curve p0, p1, p2 by line
// segments.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		next := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addLine(prev, next)
		prev = next
	}
}

// flattenCubic approximates the cubic Bézier curve p0, ..., p3 by line
// segments. The number of segments follows Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1, d2); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		next := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addLine(prev, next)
		prev = next
	}
}

// The accumulation buffers hold two numbers per pixel.  cover is the signed
// height of all segment pieces inside the pixel column (positive for
// downward segments), area is the same height weighted by the part of the
// pixel to the right of the segment.  Running a prefix sum over cover and
// adding area gives the signed area inside the path for every pixel, see
// resolveNonZero and resolveEvenOdd.
//
// Pieces left of the buffer are folded into pixel 0, pieces right of the
// buffer cannot affect it and are dropped.

// accumulate adds the part of s inside scanline y to the buffers, which
// represent the pixels left <= x < right.
func accumulate(s *segment, y int, cover, area []float32, left, right int) {
	top := max(float64(y), s.top())
	bot := min(float64(y+1), s.bottom())
	if bot <= top {
		return
	}

	dir := float32(1)
	if s.y1 < s.y0 {
		dir = -1
	}

	xa, xb := s.xAt(top), s.xAt(bot)
	if xa > xb {
		xa, xb = xb, xa
	}
	first := int(math.Floor(xa))
	last := int(math.Floor(xb))

	switch {
	case last < left:
		h := dir * float32(bot-top)
		cover[0] += h
		area[0] += h
		return
	case first >= right:
		return
	case first == last:
		deposit(s, top, bot, dir, first, cover, area, left, right)
		return
	}

	// split the piece at pixel column boundaries
	dydx := 1 / s.dxdy
	for px := first; px <= last; px++ {
		ya := s.y0 + dydx*(float64(px)-s.x0)
		yb := s.y0 + dydx*(float64(px+1)-s.x0)
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bot)
		if hi <= lo {
			continue
		}
		deposit(s, lo, hi, dir, px, cover, area, left, right)
	}
}

// deposit adds the piece of s between heights top and bot, which lies
// inside pixel column px.
func deposit(s *segment, top, bot float64, dir float32, px int, cover, area []float32, left, right int) {
	h := dir * float32(bot-top)
	switch {
	case px < left:
		cover[0] += h
		area[0] += h
	case px < right:
		frac := s.xAt((top+bot)/2) - float64(px)
		i := px - left
		cover[i] += h
		area[i] += h * float32(1-frac)
	}
}

// resolveNonZero turns the accumulated buffers into coverage values,
// using the nonzero winding rule. The result is stored in cover.
func resolveNonZero(cover, area []float32) {
	var sum float32
	for i := range cover {
		v := sum + area[i]
		sum += cover[i]
		cover[i] = min(abs32(v), 1)
	}
}

// resolveEvenOdd turns the accumulated buffers into coverage values,
// using the even-odd rule. The result is stored in cover.
func resolveEvenOdd(cover, area []float32) {
	var sum float32
	for i := range cover {
		v := abs32(sum + area[i])
		sum += cover[i]
		v -= 2 * float32(int(v/2))
		cover[i] = 1 - abs32(1-v)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// nonZeroSpan returns the sub-slice of coverage between the first and the
// last non-zero value, together with its offset.
// If all values are zero, nil is returned.
func nonZeroSpan(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

func resolve(rule fillRule, cover, area []float32) {
	if rule == evenOdd {
		resolveEvenOdd(cover, area)
	} else {
		resolveNonZero(cover, area)
	}
}

// fillBuffered rasterizes the current segments using buffers which cover
// the whole bounding box x0 <= x < x1, y0 <= y < y1.
func (r *Rasterizer) fillBuffered(x0, x1, y0, y1 int, rule fillRule, emit EmitFunc) {
	w := x1 - x0
	h := y1 - y0
	n := w * h

	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.rowUsed = slices.Grow(r.rowUsed[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowUsed)

	for i := range r.segs {
		s := &r.segs[i]
		first := max(int(math.Floor(s.top())), y0)
		last := min(int(math.Floor(s.bottom()))+1, y1)
		for y := first; y < last; y++ {
			row := y - y0
			k := row * w
			accumulate(s, y, r.cover[k:k+w], r.area[k:k+w], x0, x1)
			r.rowUsed[row] = true
		}
	}

	for row, used := range r.rowUsed {
		if !used {
			continue
		}
		k := row * w
		line := r.cover[k : k+w]
		resolve(rule, line, r.area[k:k+w])
		if span, offs := nonZeroSpan(line); span != nil {
			emit(y0+row, x0+offs, span)
		}
	}
}

// fillActive rasterizes the current segments one scanline at a time,
// keeping a list of the segments which intersect the current scanline.
func (r *Rasterizer) fillActive(x0, x1, y0, y1 int, rule fillRule, emit EmitFunc) {
	w := x1 - x0
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.segs, func(a, b segment) int {
		return cmp.Compare(a.top(), b.top())
	})

	r.active = r.active[:0]
	next := 0
	for y := y0; y < y1; y++ {
		lo, hi := float64(y), float64(y+1)

		for next < len(r.segs) && r.segs[next].top() < hi {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		touched := false
		for i := 0; i < len(r.active); {
			s := &r.segs[r.active[i]]
			if s.bottom() <= lo {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if min(hi, s.bottom()) > max(lo, s.top()) {
				accumulate(s, y, r.cover, r.area, x0, x1)
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		resolve(rule, r.cover, r.area)
		if span, offs := nonZeroSpan(r.cover); span != nil {
			emit(y, x0+offs, span)
		}
	}
}

const (
	// defaultFlatness is the default curve tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalThreshold is the smallest vertical extent of a segment
	// which is taken into account.
	horizontalThreshold = 1e-10

	// bufferedLimit is the default for Rasterizer.bufferedLimit.
	bufferedLimit = 65536
)
