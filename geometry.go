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

	"seehuhn.de/go/geom/vec"
)

// Epsilon is the absolute tolerance used by all geometric predicates.
// Two quantities closer than Epsilon are treated as equal.
const Epsilon = 1e-9

// Orientation returns twice the signed area of the triangle a, b, c.
// The result is positive if c lies to the left of the directed line a→b
// (counter-clockwise turn), negative if it lies to the right, and close to
// zero if the three points are collinear.
func Orientation(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsIntersect reports whether the closed segments p1-p2 and q1-q2
// share at least one point.  Proper crossings, touching endpoints and
// collinear overlaps all count as intersections.
func SegmentsIntersect(p1, p2, q1, q2 vec.Vec2) bool {
	d1 := Orientation(q1, q2, p1)
	d2 := Orientation(q1, q2, p2)
	d3 := Orientation(p1, p2, q1)
	d4 := Orientation(p1, p2, q2)

	if straddles(d1, d2) && straddles(d3, d4) {
		return true
	}

	// touching or collinear configurations
	if math.Abs(d1) < Epsilon && PointOnSegment(p1, q1, q2) {
		return true
	}
	if math.Abs(d2) < Epsilon && PointOnSegment(p2, q1, q2) {
		return true
	}
	if math.Abs(d3) < Epsilon && PointOnSegment(q1, p1, p2) {
		return true
	}
	if math.Abs(d4) < Epsilon && PointOnSegment(q2, p1, p2) {
		return true
	}
	return false
}

// straddles reports whether two orientation values have strictly opposite
// signs, outside the tolerance band.
func straddles(a, b float64) bool {
	return (a > Epsilon && b < -Epsilon) || (a < -Epsilon && b > Epsilon)
}

// SegmentIntersectionPoint returns the intersection of the infinite lines
// through p1-p2 and q1-q2.  The point is computed as p1 + t·(p2-p1) with t
// left unclamped, so callers wanting a segment hit must check it lies on
// both segments themselves.  The second return value is false if the lines
// are parallel or one of them is degenerate.
func SegmentIntersectionPoint(p1, p2, q1, q2 vec.Vec2) (vec.Vec2, bool) {
	t, _, ok := lineParameters(p1, p2, q1, q2)
	if !ok {
		return vec.Vec2{}, false
	}
	return p1.Add(p2.Sub(p1).Mul(t)), true
}

// lineParameters solves p1 + t·(p2-p1) = q1 + u·(q2-q1) for t and u.
func lineParameters(p1, p2, q1, q2 vec.Vec2) (t, u float64, ok bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	denom := r.X*s.Y - r.Y*s.X
	if math.Abs(denom) < Epsilon {
		return 0, 0, false
	}
	w := q1.Sub(p1)
	t = (w.X*s.Y - w.Y*s.X) / denom
	u = (w.X*r.Y - w.Y*r.X) / denom
	return t, u, true
}

// PointToSegmentDistance returns the Euclidean distance from p to the
// closest point of the closed segment s1-s2.  A segment shorter than
// Epsilon is treated as the single point s1.
func PointToSegmentDistance(p, s1, s2 vec.Vec2) float64 {
	d := s2.Sub(s1)
	lenSq := d.Dot(d)
	if lenSq < Epsilon {
		return p.Sub(s1).Length()
	}

	t := p.Sub(s1).Dot(d) / lenSq
	t = max(0, min(1, t))
	proj := s1.Add(d.Mul(t))
	return p.Sub(proj).Length()
}

// PointOnSegment reports whether p lies on the closed segment s1-s2,
// up to the tolerance Epsilon.
func PointOnSegment(p, s1, s2 vec.Vec2) bool {
	if p.X < min(s1.X, s2.X)-Epsilon || p.X > max(s1.X, s2.X)+Epsilon {
		return false
	}
	if p.Y < min(s1.Y, s2.Y)-Epsilon || p.Y > max(s1.Y, s2.Y)+Epsilon {
		return false
	}
	return math.Abs(Orientation(s1, s2, p)) < Epsilon
}

// PointInPolygon reports whether p lies inside the polygon with the given
// vertices, using the even-odd rule.  The polygon is implicitly closed.
// Polygons with fewer than three vertices contain no points.
func PointInPolygon(p vec.Vec2, poly []vec.Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	a := poly[n-1]
	for _, b := range poly {
		// half-open rule in y, so that a vertex on the ray is counted once
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		a = b
	}
	return inside
}

// SegmentIntersectsPolygon reports whether the segment a-b touches the
// polygon: either an endpoint lies inside, or the segment meets one of the
// polygon edges.
func SegmentIntersectsPolygon(a, b vec.Vec2, poly []vec.Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	if PointInPolygon(a, poly) || PointInPolygon(b, poly) {
		return true
	}
	for i := range n {
		if SegmentsIntersect(a, b, poly[i], poly[(i+1)%n]) {
			return true
		}
	}
	return false
}

// angleOf returns the angle of p as seen from origin, normalised to [0, 2π).
func angleOf(origin, p vec.Vec2) float64 {
	a := math.Atan2(p.Y-origin.Y, p.X-origin.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// isFinite reports whether both coordinates of p are finite numbers.
func isFinite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
