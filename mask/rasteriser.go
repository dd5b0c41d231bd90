// seehuhn.de/go/visibility - 2D visibility polygons
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

package mask

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Rasteriser computes exact-area anti-aliased pixel coverage for filled
// paths.  One instance can be reused for any number of paths; its buffers
// grow as needed and are kept between calls.
type Rasteriser struct {
	// CTM maps path coordinates to device pixels.
	// Must be non-singular.
	CTM matrix.Matrix

	// Clip is the device region which receives coverage.
	// Must be non-empty with integer coordinates.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the polyline approximating it.  Must be > 0.
	Flatness float64

	// smallPathThreshold is the largest bounding box area, in pixels, for
	// which the whole box is accumulated at once.  Larger paths are
	// processed one scanline at a time, using an active edge list.
	smallPathThreshold int

	cover     []float32 // signed vertical extent per pixel, then coverage
	area      []float32 // area to the right of the edge, per pixel
	edges     []edge
	active    []int
	rowLo     []int // per row: leftmost touched column, relative to the box
	rowHi     []int // per row: rightmost touched column, relative to the box
	crossings []float64

	box edgeBox
}

// edge is a non-horizontal line segment in device space.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) yRange() (lo, hi float64) {
	return min(e.y0, e.y1), max(e.y0, e.y1)
}

// xAt returns the x coordinate of the edge's line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// edgeBox is the device-space bounding box of the collected edges.
type edgeBox struct {
	empty                  bool
	xMin, xMax, yMin, yMax float64
}

func (b *edgeBox) add(x, y float64) {
	if b.empty {
		b.xMin, b.xMax, b.yMin, b.yMax = x, x, y, y
		b.empty = false
		return
	}
	b.xMin = min(b.xMin, x)
	b.xMax = max(b.xMax, x)
	b.yMin = min(b.yMin, y)
	b.yMax = max(b.yMax, y)
}

// FillRule selects how path winding is turned into coverage.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

const (
	defaultFlatness     = 0.25
	smallPathThreshold  = 65536
	horizontalTolerance = 1e-10
)

// NewRasteriser returns a Rasteriser with the identity CTM.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:                matrix.Identity,
		Clip:               clip,
		Flatness:           defaultFlatness,
		smallPathThreshold: smallPathThreshold,
	}
}

// Reset restores the default parameters for a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.crossings = r.crossings[:0]
}

// Fill rasterises p with the given fill rule.  Coverage values in (0, 1]
// are passed to emit one row at a time; zero runs at both ends of a row
// are trimmed.  The coverage slice is only valid during the call.
func (r *Rasteriser) Fill(p *path.Data, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.collect(p)
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillBox(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillScanlines(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// collect converts p into device-space edges and returns the clipped
// integer bounding box of the result.
func (r *Rasteriser) collect(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.box = edgeBox{empty: true}

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCube(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.box.xMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.box.xMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.box.yMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.box.yMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// apply maps a user-space point to device space.
func (r *Rasteriser) apply(p vec.Vec2) (x, y float64) {
	m := r.CTM
	return m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]
}

// deviceLength returns the device-space length of the user-space vector v.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	x0, y0 := r.apply(p0)
	x1, y1 := r.apply(p1)

	// Horizontal edges carry no coverage, but still extend the box.
	r.box.add(x0, y0)
	r.box.add(x1, y1)

	dy := y1 - y0
	if math.Abs(dy) < horizontalTolerance {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})
}

// flattenQuad approximates a quadratic Bézier curve by line segments.
func (r *Rasteriser) flattenQuad(p0, p1, p2 vec.Vec2) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, q)
		prev = q
	}
}

// flattenCube approximates a cubic Bézier curve by line segments.  The
// number of segments follows Wang's formula.
func (r *Rasteriser) flattenCube(p0, p1, p2, p3 vec.Vec2) {
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if nf := math.Sqrt(3 * dev / (4 * r.Flatness)); nf > 1 {
		n = int(math.Ceil(nf))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, q)
		prev = q
	}
}

// accumulate adds the contribution of e within scanline y to cover and
// area.  Both slices are indexed by x - xMin.  Parts of the edge left of
// the box are folded into the first column; parts right of the box do not
// affect any pixel in the box.
//
// For every pixel we record the signed height of the edge pieces crossing
// it (cover) and the part of that height lying to the right of the edge
// (area).  A running sum of cover along the row then yields the exact
// area of the path inside each pixel.
func (r *Rasteriser) accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	lo, hi := e.yRange()
	top := max(float64(y), lo)
	bot := min(float64(y+1), hi)
	if bot <= top {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(top), e.xAt(bot)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	if right < xMin {
		h := sign * float32(bot-top)
		cover[0] += h
		area[0] += h
		return
	}
	if left >= xMax {
		return
	}

	// Split the piece at every vertical pixel boundary it crosses.
	r.crossings = append(r.crossings[:0], top, bot)
	if left != right {
		dydx := 1 / e.dxdy
		for x := left + 1; x <= right; x++ {
			if yx := e.y0 + dydx*(float64(x)-e.x0); yx > top && yx < bot {
				r.crossings = append(r.crossings, yx)
			}
		}
		slices.Sort(r.crossings)
	}

	for i := 1; i < len(r.crossings); i++ {
		y0, y1 := r.crossings[i-1], r.crossings[i]
		if y1 <= y0 {
			continue
		}
		h := sign * float32(y1-y0)
		xm := e.xAt((y0 + y1) / 2)
		px := int(math.Floor(xm))
		switch {
		case px < xMin:
			cover[0] += h
			area[0] += h
		case px < xMax:
			cover[px-xMin] += h
			area[px-xMin] += h * float32(1-(xm-float64(px)))
		}
	}
}

// resolve turns the accumulated cover and area of one row into coverage
// values, in place in cover.
func resolve(cover, area []float32, rule FillRule) {
	var run float32
	for i := range cover {
		w := run + area[i]
		run += cover[i]
		if w < 0 {
			w = -w
		}
		if rule == NonZero {
			cover[i] = min(w, 1)
		} else {
			m := w - 2*float32(int(w/2))
			if m > 1 {
				m = 2 - m
			}
			cover[i] = m
		}
	}
}

// trim strips zero coverage from both ends of a row.
func trim(row []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}

// markColumn records that the edge touches row in the current box.
func (r *Rasteriser) markColumn(e *edge, y, row, xMin, xMax int) {
	lo, hi := e.yRange()
	top := max(float64(y), lo)
	bot := min(float64(y+1), hi)
	if bot <= top {
		return
	}
	x := int(math.Floor(e.xAt((top + bot) / 2)))
	x = min(max(x, xMin), xMax-1) - xMin
	r.rowLo[row] = min(r.rowLo[row], x)
	r.rowHi[row] = max(r.rowHi[row], x)
}

// fillBox accumulates all edges into buffers covering the whole bounding
// box, then resolves each row.
func (r *Rasteriser) fillBox(xMin, xMax, yMin, yMax int, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	w, h := xMax-xMin, yMax-yMin
	r.cover = grow(r.cover, w*h)
	r.area = grow(r.area, w*h)
	r.rowLo = slices.Grow(r.rowLo[:0], h)[:h]
	r.rowHi = slices.Grow(r.rowHi[:0], h)[:h]
	for i := range h {
		r.rowLo[i] = w
		r.rowHi[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]
		lo, hi := e.yRange()
		y0 := max(int(math.Floor(lo)), yMin)
		y1 := min(int(math.Floor(hi))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * w
			r.accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			r.markColumn(e, y, row, xMin, xMax)
		}
	}

	for row := range h {
		if r.rowHi[row] < 0 {
			continue
		}
		off := row * w
		cov := r.cover[off : off+w]
		resolve(cov, r.area[off:off+w], rule)
		if t, k := trim(cov); t != nil {
			emit(yMin+row, xMin+k, t)
		}
	}
}

// fillScanlines processes one row at a time, keeping a list of the edges
// which intersect the current row.
func (r *Rasteriser) fillScanlines(xMin, xMax, yMin, yMax int, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	w := xMax - xMin
	r.cover = grow(r.cover, w)
	r.area = grow(r.area, w)

	slices.SortFunc(r.edges, func(a, b edge) int {
		la, _ := a.yRange()
		lb, _ := b.yRange()
		return cmp.Compare(la, lb)
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(r.edges) {
			if lo, _ := r.edges[next].yRange(); lo >= bot {
				break
			}
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
			e := &r.edges[r.active[i]]
			if _, hi := e.yRange(); hi <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			r.accumulate(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		resolve(r.cover, r.area, rule)
		if t, k := trim(r.cover); t != nil {
			emit(y, xMin+k, t)
		}
	}
}

// grow returns a zeroed slice of length n, reusing the storage of buf.
func grow(buf []float32, n int) []float32 {
	buf = slices.Grow(buf[:0], n)[:n]
	clear(buf)
	return buf
}
