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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func v(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func TestOrientation(t *testing.T) {
	cases := []struct {
		a, b, c vec.Vec2
		sign    int
	}{
		{v(0, 0), v(1, 0), v(0, 1), 1},
		{v(0, 0), v(1, 0), v(0, -1), -1},
		{v(0, 0), v(1, 1), v(2, 2), 0},
		{v(1, 1), v(3, 1), v(2, 5), 1},
		{v(-3, 2), v(-3, 7), v(-1, 4), -1},
	}
	for i, tc := range cases {
		got := Orientation(tc.a, tc.b, tc.c)
		var sign int
		switch {
		case got > Epsilon:
			sign = 1
		case got < -Epsilon:
			sign = -1
		}
		if sign != tc.sign {
			t.Errorf("%d: Orientation(%v, %v, %v) = %g, want sign %d",
				i, tc.a, tc.b, tc.c, got, tc.sign)
		}
	}

	// twice the area of the triangle
	if got := Orientation(v(0, 0), v(4, 0), v(0, 3)); got != 12 {
		t.Errorf("Orientation = %g, want 12", got)
	}
}

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name           string
		p1, p2, q1, q2 vec.Vec2
		want           bool
	}{
		{"crossing", v(0, 0), v(2, 2), v(0, 2), v(2, 0), true},
		{"disjoint", v(0, 0), v(1, 0), v(0, 1), v(1, 1), false},
		{"touching_endpoints", v(0, 0), v(1, 1), v(1, 1), v(2, 0), true},
		{"t_junction", v(0, 0), v(2, 0), v(1, 0), v(1, 5), true},
		{"collinear_overlap", v(0, 0), v(2, 0), v(1, 0), v(3, 0), true},
		{"collinear_gap", v(0, 0), v(1, 0), v(2, 0), v(3, 0), false},
		{"parallel", v(0, 0), v(2, 0), v(0, 1), v(2, 1), false},
		{"near_miss", v(0, 0), v(1, 0), v(1.001, -1), v(1.001, 1), false},
		{"degenerate_on", v(1, 0), v(1, 0), v(0, 0), v(2, 0), true},
		{"degenerate_off", v(1, 1), v(1, 1), v(0, 0), v(2, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentsIntersect(tc.p1, tc.p2, tc.q1, tc.q2); got != tc.want {
				t.Errorf("got %t, want %t", got, tc.want)
			}
			// the predicate is symmetric
			if got := SegmentsIntersect(tc.q2, tc.q1, tc.p2, tc.p1); got != tc.want {
				t.Errorf("swapped: got %t, want %t", got, tc.want)
			}
		})
	}
}

func TestSegmentIntersectionPoint(t *testing.T) {
	p, ok := SegmentIntersectionPoint(v(0, 0), v(4, 4), v(0, 4), v(4, 0))
	if !ok || p.Sub(v(2, 2)).Length() > Epsilon {
		t.Errorf("got %v, %t, want (2, 2)", p, ok)
	}

	// the line parameter is not clamped
	p, ok = SegmentIntersectionPoint(v(0, 0), v(1, 0), v(5, -1), v(5, 1))
	if !ok || p.Sub(v(5, 0)).Length() > Epsilon {
		t.Errorf("got %v, %t, want (5, 0)", p, ok)
	}

	if _, ok := SegmentIntersectionPoint(v(0, 0), v(1, 0), v(0, 1), v(1, 1)); ok {
		t.Error("parallel lines reported as intersecting")
	}
	if _, ok := SegmentIntersectionPoint(v(0, 0), v(0, 0), v(0, 1), v(1, 1)); ok {
		t.Error("degenerate line reported as intersecting")
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	cases := []struct {
		p, s1, s2 vec.Vec2
		want      float64
	}{
		{v(0, 1), v(-1, 0), v(1, 0), 1},
		{v(3, 4), v(-1, 0), v(0, 0), 5},
		{v(-4, -3), v(0, 0), v(1, 0), 5},
		{v(0.5, 0), v(0, 0), v(1, 0), 0},
		{v(3, 4), v(0, 0), v(0, 0), 5},
		{v(1, 1), v(0, 2), v(2, 0), 0},
	}
	for i, tc := range cases {
		got := PointToSegmentDistance(tc.p, tc.s1, tc.s2)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%d: got %g, want %g", i, got, tc.want)
		}
	}
}

func TestPointOnSegment(t *testing.T) {
	cases := []struct {
		p, s1, s2 vec.Vec2
		want      bool
	}{
		{v(1, 1), v(0, 0), v(2, 2), true},
		{v(0, 0), v(0, 0), v(2, 2), true},
		{v(2, 2), v(0, 0), v(2, 2), true},
		{v(3, 3), v(0, 0), v(2, 2), false},
		{v(1, 1.1), v(0, 0), v(2, 2), false},
		{v(1, 0), v(0, 0), v(2, 0), true},
		{v(1, 1e-12), v(0, 0), v(2, 0), true},
	}
	for i, tc := range cases {
		if got := PointOnSegment(tc.p, tc.s1, tc.s2); got != tc.want {
			t.Errorf("%d: PointOnSegment(%v, %v, %v) = %t, want %t",
				i, tc.p, tc.s1, tc.s2, got, tc.want)
		}
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []vec.Vec2{v(0, 0), v(10, 0), v(10, 10), v(0, 10)}
	// a "U" shape, open at the top
	u := []vec.Vec2{
		v(0, 0), v(9, 0), v(9, 9), v(6, 9),
		v(6, 3), v(3, 3), v(3, 9), v(0, 9),
	}

	cases := []struct {
		name string
		poly []vec.Vec2
		p    vec.Vec2
		want bool
	}{
		{"square_inside", square, v(5, 5), true},
		{"square_outside", square, v(15, 5), false},
		{"square_left", square, v(-1, 5), false},
		{"square_vertex_height", square, v(5, 10), false},
		{"u_left_arm", u, v(1.5, 6), true},
		{"u_gap", u, v(4.5, 6), false},
		{"u_base", u, v(4.5, 1), true},
		{"u_ray_through_vertex", u, v(1, 3), true},
		{"too_few_vertices", square[:2], v(0.5, 0), false},
		{"empty", nil, v(0, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PointInPolygon(tc.p, tc.poly); got != tc.want {
				t.Errorf("got %t, want %t", got, tc.want)
			}
		})
	}
}

func TestSegmentIntersectsPolygon(t *testing.T) {
	square := []vec.Vec2{v(0, 0), v(10, 0), v(10, 10), v(0, 10)}

	cases := []struct {
		name string
		a, b vec.Vec2
		want bool
	}{
		{"inside", v(2, 2), v(8, 8), true},
		{"one_end_inside", v(5, 5), v(20, 5), true},
		{"crossing", v(-5, 5), v(15, 5), true},
		{"touching_edge", v(-5, 10), v(15, 10), true},
		{"touching_corner", v(10, 10), v(20, 20), true},
		{"outside", v(11, 0), v(11, 10), false},
		{"diagonal_miss", v(12, 0), v(20, 8), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentIntersectsPolygon(tc.a, tc.b, square); got != tc.want {
				t.Errorf("got %t, want %t", got, tc.want)
			}
		})
	}

	if SegmentIntersectsPolygon(v(0, 0), v(1, 1), square[:2]) {
		t.Error("degenerate polygon reported as intersecting")
	}
}

func TestAngleOf(t *testing.T) {
	origin := v(1, 1)
	cases := []struct {
		p    vec.Vec2
		want float64
	}{
		{v(2, 1), 0},
		{v(1, 2), math.Pi / 2},
		{v(0, 1), math.Pi},
		{v(1, 0), 3 * math.Pi / 2},
		{v(2, 1 - 1e-300), 0},
	}
	for i, tc := range cases {
		got := angleOf(origin, tc.p)
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("%d: angle %g out of range", i, got)
		}
		if math.Abs(got-tc.want) > 1e-12 && math.Abs(got-tc.want-2*math.Pi) > 1e-12 {
			t.Errorf("%d: angleOf(%v) = %g, want %g", i, tc.p, got, tc.want)
		}
	}
}
