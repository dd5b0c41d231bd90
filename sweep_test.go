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
	"context"
	"errors"
	"log/slog"
	"maps"
	"math"
	"slices"
	"sync"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/visibility/testcases"
)

// segmentsOf converts the walls of a test case into obstacles with IDs
// 1, 2, ...
func segmentsOf(tc testcases.TestCase) []Segment {
	segs := make([]Segment, len(tc.Walls))
	for i, w := range tc.Walls {
		segs[i] = Segment{ID: i + 1, A: w.A, B: w.B}
	}
	return segs
}

// forAllCases runs fn as a subtest for every test case in the catalogue.
func forAllCases(t *testing.T, fn func(t *testing.T, tc testcases.TestCase)) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				fn(t, tc)
			})
		}
	}
}

func TestComputeProperties(t *testing.T) {
	forAllCases(t, func(t *testing.T, tc testcases.TestCase) {
		segs := segmentsOf(tc)
		opt := &Options{FrameMargin: tc.Margin}
		poly, err := Compute(tc.Origin, segs, opt)
		if err != nil {
			t.Fatal(err)
		}
		if len(poly) < 3 {
			t.Fatalf("polygon has only %d vertices", len(poly))
		}

		margin := tc.Margin
		if margin == 0 {
			margin = DefaultFrameMargin
		}
		frame := Frame(tc.Origin, segs, margin)
		r := FrameRect(tc.Origin, segs, margin)

		// every vertex lies on an obstacle or on the frame
		boundary := append(slices.Clone(segs), frame[:]...)
		for i, p := range poly {
			found := false
			for _, s := range boundary {
				if PointToSegmentDistance(p, s.A, s.B) < 1e-6 {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("vertex %d %v lies on no obstacle", i, p)
			}
		}

		// no two consecutive vertices coincide
		for i, p := range poly {
			q := poly[(i+1)%len(poly)]
			if p.Sub(q).Length() <= Epsilon {
				t.Errorf("vertices %d and %d coincide", i, (i+1)%len(poly))
			}
		}

		// the polygon winds once around the origin, counter-clockwise,
		// and never turns back
		var total float64
		for i, p := range poly {
			q := poly[(i+1)%len(poly)]
			step := angleOf(tc.Origin, q) - angleOf(tc.Origin, p)
			if step <= -math.Pi {
				step += 2 * math.Pi
			} else if step > math.Pi {
				step -= 2 * math.Pi
			}
			if step < -1e-7 {
				t.Errorf("vertex %d: angle decreases by %g", i, -step)
			}
			total += step
		}
		if math.Abs(total-2*math.Pi) > 1e-6 {
			t.Errorf("total angle %g, want 2π", total)
		}

		if !poly.Contains(tc.Origin) {
			t.Error("origin is outside the polygon")
		}

		area := poly.Area()
		frameArea := (r.URx - r.LLx) * (r.URy - r.LLy)
		if area <= 0 || area > frameArea*(1+1e-12) {
			t.Errorf("area %g outside (0, %g]", area, frameArea)
		}
	})
}

func TestComputeSortModes(t *testing.T) {
	forAllCases(t, func(t *testing.T, tc testcases.TestCase) {
		segs := segmentsOf(tc)
		want, err := Compute(tc.Origin, segs, &Options{FrameMargin: tc.Margin})
		if err != nil {
			t.Fatal(err)
		}
		for _, threshold := range []int{1, 2, 10, 50} {
			opt := &Options{
				Sort:               SortStableHybrid,
				InsertionThreshold: threshold,
				FrameMargin:        tc.Margin,
			}
			got, err := Compute(tc.Origin, segs, opt)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, want) {
				t.Errorf("threshold %d: polygons differ", threshold)
			}
		}
	})
}

func TestComputeDeterministic(t *testing.T) {
	tc := testcases.All["large"][1]
	segs := segmentsOf(tc)
	want, err := Compute(tc.Origin, segs, nil)
	if err != nil {
		t.Fatal(err)
	}

	// concurrent calls do not interfere
	var wg sync.WaitGroup
	res := make([]Polygon, 8)
	for i := range res {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res[i], _ = Compute(tc.Origin, segs, nil)
		}()
	}
	wg.Wait()
	for i, got := range res {
		if !slices.Equal(got, want) {
			t.Errorf("run %d: result differs", i)
		}
	}
}

func TestComputeInputUnchanged(t *testing.T) {
	tc := testcases.All["room"][0]
	segs := segmentsOf(tc)
	orig := slices.Clone(segs)
	if _, err := Compute(tc.Origin, segs, nil); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(segs, orig) {
		t.Error("obstacles were modified")
	}
}

func closePolygons(a, b Polygon, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Sub(b[i]).Length() > tol {
			return false
		}
	}
	return true
}

func TestComputeSingleWall(t *testing.T) {
	want := Polygon{
		v(10, 5), v(515, 257.5), v(515, 510), v(-505, 510),
		v(-505, -510), v(515, -510), v(515, -257.5), v(10, -5),
	}
	for _, wall := range []Segment{
		{ID: 1, A: v(10, -5), B: v(10, 5)},
		{ID: 1, A: v(10, 5), B: v(10, -5)},
	} {
		got, err := Compute(v(0, 0), []Segment{wall}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !closePolygons(got, want, 1e-6) {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	got, err := Compute(v(0, 0), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Polygon{v(500, 500), v(-500, 500), v(-500, -500), v(500, -500)}
	if !closePolygons(got, want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
	if a := got.Area(); math.Abs(a-1e6) > 1e-3 {
		t.Errorf("area %g, want 1e6", a)
	}
}

func TestComputeClosedBox(t *testing.T) {
	segs := []Segment{
		{ID: 1, A: v(-10, -10), B: v(10, -10)},
		{ID: 2, A: v(10, -10), B: v(10, 10)},
		{ID: 3, A: v(10, 10), B: v(-10, 10)},
		{ID: 4, A: v(-10, 10), B: v(-10, -10)},
	}
	for _, origin := range []vec.Vec2{v(0, 0), v(3, -7), v(-9, 9)} {
		poly, err := Compute(origin, segs, nil)
		if err != nil {
			t.Fatal(err)
		}
		if a := poly.Area(); math.Abs(a-400) > 1e-6 {
			t.Errorf("origin %v: area %g, want 400", origin, a)
		}
		for _, p := range poly {
			if math.Abs(p.X) > 10+1e-9 || math.Abs(p.Y) > 10+1e-9 {
				t.Errorf("origin %v: vertex %v outside the box", origin, p)
			}
		}
	}
}

func TestComputeParallelWalls(t *testing.T) {
	// The far wall is completely hidden behind the near one.
	near := Segment{ID: 1, A: v(10, -5), B: v(10, 5)}
	far := Segment{ID: 2, A: v(20, -3), B: v(20, 3)}
	poly, err := Compute(v(0, 0), []Segment{near, far}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range poly {
		if PointToSegmentDistance(p, far.A, far.B) < 1e-6 {
			t.Errorf("hidden wall contributes vertex %v", p)
		}
	}

	alone, err := Compute(v(0, 0), []Segment{near}, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(poly.Area()-alone.Area()) > 1e-6 {
		t.Errorf("hidden wall changes the area from %g to %g", alone.Area(), poly.Area())
	}
}

func TestComputeCrossingWalls(t *testing.T) {
	cross := []Segment{
		{ID: 1, A: v(8, -4), B: v(12, 4)},
		{ID: 2, A: v(12, -4), B: v(8, 4)},
	}
	// the same walls, cut at the crossing point (10, 0)
	pieces := []Segment{
		{ID: 1, A: v(8, -4), B: v(10, 0)},
		{ID: 2, A: v(10, 0), B: v(12, 4)},
		{ID: 3, A: v(12, -4), B: v(10, 0)},
		{ID: 4, A: v(10, 0), B: v(8, 4)},
	}
	for _, origin := range []vec.Vec2{v(0, 0), v(0, 1.5), v(-3, -2), v(10, -20)} {
		got, err := Compute(origin, cross, nil)
		if err != nil {
			t.Fatal(err)
		}
		want, err := Compute(origin, pieces, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !closePolygons(got, want, 1e-9) {
			t.Errorf("origin %v: got %v, want %v", origin, got, want)
		}
	}

	poly, err := Compute(v(0, 0), cross, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		p       vec.Vec2
		visible bool
	}{
		{v(9.9, 0.01), true},
		{v(8.9, 1.5), true},
		{v(10.1, 0.01), false},
		{v(11, 1), false},
	} {
		if got := poly.Contains(tc.p); got != tc.visible {
			t.Errorf("%v: visible=%t, want %t", tc.p, got, tc.visible)
		}
	}
	if !slices.ContainsFunc(poly, func(p vec.Vec2) bool {
		return p.Sub(v(10, 0)).Length() < 1e-9
	}) {
		t.Errorf("crossing point missing from %v", poly)
	}
}

func TestComputeOverlappingBoxes(t *testing.T) {
	// The corner of the second box hides the square [5, 10]x[5, 10] of
	// the first one.
	var segs []Segment
	id := 1
	for _, w := range [][2]vec.Vec2{
		{v(-10, -10), v(10, -10)}, {v(10, -10), v(10, 10)},
		{v(10, 10), v(-10, 10)}, {v(-10, 10), v(-10, -10)},
		{v(5, 5), v(25, 5)}, {v(25, 5), v(25, 25)},
		{v(25, 25), v(5, 25)}, {v(5, 25), v(5, 5)},
	} {
		segs = append(segs, Segment{ID: id, A: w[0], B: w[1]})
		id++
	}
	for _, mode := range []SortMode{SortFast, SortStableHybrid} {
		poly, err := Compute(v(0, 0), segs, &Options{Sort: mode})
		if err != nil {
			t.Fatal(err)
		}
		if a := poly.Area(); math.Abs(a-375) > 1e-6 {
			t.Errorf("%s: area %g, want 375", mode, a)
		}
	}
}

func TestComputeIgnoredObstacles(t *testing.T) {
	cases := []struct {
		name string
		seg  Segment
	}{
		{"through_origin", Segment{ID: 1, A: v(-10, -10), B: v(10, 10)}},
		{"endpoint_at_origin", Segment{ID: 1, A: v(0, 0), B: v(10, 10)}},
		{"zero_length", Segment{ID: 1, A: v(5, 5), B: v(5, 5)}},
		{"radial", Segment{ID: 1, A: v(5, 5), B: v(15, 15)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			segs := []Segment{tc.seg}
			poly, err := Compute(v(0, 0), segs, nil)
			if err != nil {
				t.Fatal(err)
			}
			r := FrameRect(v(0, 0), segs, DefaultFrameMargin)
			want := (r.URx - r.LLx) * (r.URy - r.LLy)
			if a := poly.Area(); math.Abs(a-want) > 1e-6*want {
				t.Errorf("area %g, want the full frame %g", a, want)
			}
		})
	}
}

func TestComputeMonotone(t *testing.T) {
	// Adding an obstacle inside the bounding box never enlarges the
	// visible region.
	base := segmentsOf(testcases.All["room"][0])
	origin := v(0, 0)
	before, err := Compute(origin, base, nil)
	if err != nil {
		t.Fatal(err)
	}

	extra := []Segment{
		{ID: 100, A: v(5, 5), B: v(8, 2)},
		{ID: 100, A: v(-15, 12), B: v(-3, 14)},
		{ID: 100, A: v(0, -10), B: v(0, -18)},
		{ID: 100, A: v(19, -19), B: v(19, 19)},
	}
	for _, e := range extra {
		after, err := Compute(origin, append(slices.Clone(base), e), nil)
		if err != nil {
			t.Fatal(err)
		}
		if after.Area() > before.Area()+1e-6 {
			t.Errorf("obstacle %v: area grows from %g to %g", e, before.Area(), after.Area())
		}
	}
}

func TestComputeErrors(t *testing.T) {
	good := []Segment{{ID: 1, A: v(1, 1), B: v(2, 1)}}
	cases := []struct {
		name   string
		origin vec.Vec2
		segs   []Segment
		opt    *Options
	}{
		{"nan_origin", v(math.NaN(), 0), good, nil},
		{"inf_origin", v(0, math.Inf(1)), good, nil},
		{"nan_obstacle", v(0, 0), []Segment{{ID: 1, A: v(1, math.NaN()), B: v(2, 1)}}, nil},
		{"inf_obstacle", v(0, 0), []Segment{{ID: 1, A: v(1, 1), B: v(math.Inf(-1), 1)}}, nil},
		{"bad_sort", v(0, 0), good, &Options{Sort: SortMode(5)}},
		{"negative_threshold", v(0, 0), good, &Options{InsertionThreshold: -1}},
		{"negative_margin", v(0, 0), good, &Options{FrameMargin: -1}},
		{"nan_margin", v(0, 0), good, &Options{FrameMargin: math.NaN()}},
		{"frame_id", v(0, 0), []Segment{{ID: FrameRight, A: v(10, -5), B: v(10, 5)}}, nil},
		{"negative_id", v(0, 0), []Segment{{ID: -17, A: v(10, -5), B: v(10, 5)}}, nil},
		{"duplicate_id", v(0, 0), []Segment{
			{ID: 1, A: v(10, -5), B: v(10, 5)},
			{ID: 1, A: v(5, -1), B: v(5, 1)},
		}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			poly, err := Compute(tc.origin, tc.segs, tc.opt)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got error %v, want ErrInvalidArgument", err)
			}
			if poly != nil {
				t.Errorf("got polygon %v with error", poly)
			}
		})
	}
}

// recorder is a slog.Handler which keeps all messages.
type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Enabled(context.Context, slog.Level) bool { return true }
func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, rec.Message)
	return nil
}
func (r *recorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recorder) WithGroup(string) slog.Handler      { return r }

func TestLogger(t *testing.T) {
	rec := &recorder{}
	SetLogger(slog.New(rec))
	defer SetLogger(nil)

	segs := []Segment{
		{ID: 1, A: v(0, 0), B: v(10, 10)},
		{ID: 2, A: v(10, -5), B: v(10, 5)},
	}
	if _, err := Compute(v(0, 0), segs, nil); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(rec.msgs, "obstacle ignored") {
		t.Errorf("ignored obstacle not logged, got %q", rec.msgs)
	}
	if !slices.Contains(rec.msgs, "visibility sweep done") {
		t.Errorf("sweep not logged, got %q", rec.msgs)
	}
}

func BenchmarkCompute(b *testing.B) {
	for _, tc := range testcases.All["large"] {
		segs := segmentsOf(tc)
		for _, mode := range []SortMode{SortFast, SortStableHybrid} {
			b.Run(tc.Name+"/"+mode.String(), func(b *testing.B) {
				opt := &Options{Sort: mode}
				b.ReportAllocs()
				for b.Loop() {
					_, err := Compute(tc.Origin, segs, opt)
					if err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
