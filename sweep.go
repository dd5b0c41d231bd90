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
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// ErrInvalidArgument is returned (wrapped) by Compute when its inputs
// cannot be processed.
var ErrInvalidArgument = errors.New("invalid argument")

// Segment is an opaque line segment obstacle.
type Segment struct {
	// ID identifies the obstacle.  The IDs passed to Compute must be
	// distinct and non-negative; negative IDs are reserved for the
	// synthetic frame.
	ID int

	A, B vec.Vec2

	// Color is used by renderers only.
	Color string
}

// Options control the visibility computation.
// The zero value selects the defaults.
type Options struct {
	// Sort selects the algorithm used to order the sweep events.
	Sort SortMode

	// InsertionThreshold is the run length at or below which
	// SortStableHybrid switches to insertion sort.  Zero selects
	// DefaultInsertionThreshold.
	InsertionThreshold int

	// FrameMargin is the extra space between the scene and the synthetic
	// frame.  Zero selects DefaultFrameMargin.
	FrameMargin float64
}

// Validate reports whether the options can be used.  Errors wrap
// [ErrInvalidArgument].
func (opt *Options) Validate() error {
	if !opt.Sort.valid() {
		return fmt.Errorf("%w: unknown sort mode %d", ErrInvalidArgument, int(opt.Sort))
	}
	if opt.InsertionThreshold < 0 {
		return fmt.Errorf("%w: negative insertion threshold %d",
			ErrInvalidArgument, opt.InsertionThreshold)
	}
	if opt.FrameMargin < 0 || math.IsNaN(opt.FrameMargin) || math.IsInf(opt.FrameMargin, 0) {
		return fmt.Errorf("%w: frame margin %g", ErrInvalidArgument, opt.FrameMargin)
	}
	return nil
}

// Compute returns the visibility polygon of origin among the given
// obstacles.
//
// The polygon lists the boundary of the region visible from origin in
// counter-clockwise order, starting at the direction of angle 0.  It is
// implicitly closed.  The region is bounded by a synthetic frame
// surrounding all obstacles, so that the result is finite even when
// nothing blocks the view.
//
// The obstacles are not modified.  Obstacles passing through the origin,
// obstacles of zero length and obstacles pointing straight at the origin
// do not block anything visible and are ignored.  Obstacles may cross
// each other.  Obstacle IDs must be distinct and non-negative.
//
// If opt is nil, default options are used.
func Compute(origin vec.Vec2, obstacles []Segment, opt *Options) (Polygon, error) {
	if opt == nil {
		opt = &Options{}
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(origin) {
		return nil, fmt.Errorf("%w: origin %v is not finite", ErrInvalidArgument, origin)
	}
	if err := checkObstacles(obstacles); err != nil {
		return nil, err
	}

	threshold := opt.InsertionThreshold
	if threshold == 0 {
		threshold = DefaultInsertionThreshold
	}
	margin := opt.FrameMargin
	if margin == 0 {
		margin = DefaultFrameMargin
	}

	s := &sweep{
		origin:    origin,
		mode:      opt.Sort,
		threshold: threshold,
	}
	s.buildFrame(obstacles, margin)
	s.extractEvents()
	s.sortEvents()
	s.seed()
	s.run()
	return s.finish(), nil
}

// checkObstacles rejects obstacles with non-finite coordinates, negative
// IDs or repeated IDs.
func checkObstacles(obstacles []Segment) error {
	seen := make(map[int]bool, len(obstacles))
	for i := range obstacles {
		o := &obstacles[i]
		if !isFinite(o.A) || !isFinite(o.B) {
			return fmt.Errorf("%w: obstacle %d has non-finite coordinates",
				ErrInvalidArgument, o.ID)
		}
		if o.ID < 0 {
			return fmt.Errorf("%w: obstacle ID %d is reserved for the frame",
				ErrInvalidArgument, o.ID)
		}
		if seen[o.ID] {
			return fmt.Errorf("%w: duplicate obstacle ID %d", ErrInvalidArgument, o.ID)
		}
		seen[o.ID] = true
	}
	return nil
}

// sweep holds the state of one visibility computation.
type sweep struct {
	origin    vec.Vec2
	mode      SortMode
	threshold int

	segs   []Segment
	reach  float64 // exceeds the frame diameter
	events []event
	wrap   []*Segment
	active *activeTree

	poly Polygon
	last vec.Vec2 // most recently emitted point, if len(poly) > 0
}

// buildFrame copies the usable obstacles, cuts them where they cross and
// appends the four frame edges.
//
// The pieces are renumbered 0, 1, ... in the order of the original IDs,
// so that every obstacle in the active tree has its own ID and ties are
// still broken the same way.
func (s *sweep) buildFrame(obstacles []Segment, margin float64) {
	used := make([]Segment, 0, len(obstacles))
	for _, o := range obstacles {
		if reason := s.ignoreReason(o); reason != "" {
			Logger().Debug("obstacle ignored",
				slog.Int("id", o.ID), slog.String("reason", reason))
			continue
		}
		used = append(used, o)
	}

	pieces := splitCrossings(used)
	if len(pieces) > len(used) {
		Logger().Debug("crossing obstacles split",
			slog.Int("obstacles", len(used)),
			slog.Int("pieces", len(pieces)))
	}
	order := make([]int, len(pieces))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		return cmp.Compare(pieces[i].ID, pieces[j].ID)
	})
	for k, i := range order {
		pieces[i].ID = k
	}

	s.segs = make([]Segment, 0, len(pieces)+4)
	s.segs = append(s.segs, pieces...)
	r := FrameRect(s.origin, obstacles, margin)
	frame := frameEdges(r)
	s.segs = append(s.segs, frame[:]...)
	s.reach = 2 * math.Hypot(r.URx-r.LLx, r.URy-r.LLy)
}

// ignoreReason returns a non-empty description if o cannot contribute to
// the visibility polygon.
func (s *sweep) ignoreReason(o Segment) string {
	if o.B.Sub(o.A).Length() < Epsilon {
		return "zero length"
	}
	if PointToSegmentDistance(s.origin, o.A, o.B) < Epsilon {
		return "touches origin"
	}
	da := o.A.Sub(s.origin).Length()
	db := o.B.Sub(s.origin).Length()
	if math.Abs(Orientation(s.origin, o.A, o.B)) < Epsilon*da*db {
		return "radial"
	}
	return ""
}

func (s *sweep) extractEvents() {
	s.events, s.wrap = extractEvents(make([]event, 0, 2*len(s.segs)), s.origin, s.segs)
}

func (s *sweep) sortEvents() {
	sortWith(s.mode, s.events, compareEvents, s.threshold)
}

// seed fills the active set with the obstacles crossed by the ray at
// angle 0.  The right frame edge is always among them.
func (s *sweep) seed() {
	s.active = newActiveTree(s.origin, s.reach, len(s.segs))
	for _, seg := range s.wrap {
		s.active.Insert(seg)
	}
}

// nearest returns the first obstacle hit at the given angle.
// The frame encloses the origin, so the ray always hits something.
func (s *sweep) nearest(angle float64) rayHit {
	hit, ok := s.active.NearestAlongRay(angle)
	if !ok {
		panic(fmt.Sprintf("visibility: no active obstacle at angle %g", angle))
	}
	return hit
}

func (s *sweep) run() {
	for i := range s.events {
		v := &s.events[i]

		old := s.nearest(v.angle)
		if v.kind == opening {
			s.active.Insert(v.seg)
		} else {
			s.active.Remove(v.seg.ID)
		}
		cur := s.nearest(v.angle)

		// cur is the nearest of all active obstacles, so an event point
		// in front of it cannot be hidden by anything else.
		s.emit(old.pt)
		if v.dist < cur.dist-Epsilon {
			s.emit(v.pt)
		}
		s.emit(cur.pt)
	}

	Logger().Debug("visibility sweep done",
		slog.Int("obstacles", len(s.segs)-4),
		slog.Int("events", len(s.events)),
		slog.Int("vertices", len(s.poly)))
}

// emit appends p to the polygon unless it repeats the previous point.
func (s *sweep) emit(p vec.Vec2) {
	if len(s.poly) > 0 && p.Sub(s.last).Length() <= Epsilon {
		return
	}
	s.poly = append(s.poly, p)
	s.last = p
}

// finish drops the working state and returns the polygon.
func (s *sweep) finish() Polygon {
	poly := s.poly
	if n := len(poly); n > 1 && poly[n-1].Sub(poly[0]).Length() <= Epsilon {
		poly = poly[:n-1]
	}

	s.segs = nil
	s.events = nil
	s.wrap = nil
	s.active = nil
	s.poly = nil
	return poly
}
