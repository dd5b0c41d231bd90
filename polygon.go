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

package visibility

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Polygon is a closed polygon, given by its vertices in order.
// The last vertex connects back to the first.
type Polygon []vec.Vec2

// Contains reports whether p lies inside the polygon (even-odd rule).
func (poly Polygon) Contains(p vec.Vec2) bool {
	return PointInPolygon(p, poly)
}

// IntersectsSegment reports whether the segment a-b lies at least partly
// inside the polygon or touches its boundary.
func (poly Polygon) IntersectsSegment(a, b vec.Vec2) bool {
	return SegmentIntersectsPolygon(a, b, poly)
}

// Area returns the area enclosed by the polygon.
func (poly Polygon) Area() float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var sum float64
	a := poly[n-1]
	for _, b := range poly {
		sum += a.X*b.Y - b.X*a.Y
		a = b
	}
	return math.Abs(sum) / 2
}

// Bounds returns the smallest rectangle containing all vertices.
// The result is the zero rectangle for an empty polygon.
func (poly Polygon) Bounds() rect.Rect {
	if len(poly) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: poly[0].X, LLy: poly[0].Y, URx: poly[0].X, URy: poly[0].Y}
	for _, p := range poly[1:] {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return r
}

// Path returns the polygon outline as a closed path.
func (poly Polygon) Path() *path.Data {
	p := &path.Data{}
	if len(poly) == 0 {
		return p
	}
	p = p.MoveTo(poly[0])
	for _, v := range poly[1:] {
		p = p.LineTo(v)
	}
	return p.Close()
}
