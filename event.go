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

// eventKind tells whether the sweep ray starts or stops crossing an
// obstacle at an event.
type eventKind uint8

const (
	opening eventKind = iota
	closing
)

func (k eventKind) String() string {
	if k == opening {
		return "opening"
	}
	return "closing"
}

// event is one endpoint of an obstacle, as seen from the origin.
type event struct {
	kind  eventKind
	seg   *Segment
	pt    vec.Vec2
	angle float64 // in [0, 2π)
	dist  float64 // distance from the origin to pt
}

// compareEvents orders events by angle, then by distance from the origin,
// then opening before closing.  Angles and distances within Epsilon count
// as equal.  Remaining ties are broken by obstacle ID so that the order is
// the same for every sort algorithm.
func compareEvents(a, b event) int {
	if math.Abs(a.angle-b.angle) > Epsilon {
		if a.angle < b.angle {
			return -1
		}
		return 1
	}
	if math.Abs(a.dist-b.dist) > Epsilon {
		if a.dist < b.dist {
			return -1
		}
		return 1
	}
	if a.kind != b.kind {
		if a.kind == opening {
			return -1
		}
		return 1
	}
	switch {
	case a.seg.ID < b.seg.ID:
		return -1
	case a.seg.ID > b.seg.ID:
		return 1
	}
	return 0
}

// extractEvents appends the two endpoint events of every segment to dst.
//
// The opening endpoint is the one from which the angular span of the
// segment proceeds counter-clockwise.  For most segments this is the
// endpoint with the smaller angle.  Segments whose span contains the
// direction of angle 0 open at a larger angle than they close; these are
// returned separately in wrap, since the sweep starts out crossing them.
func extractEvents(dst []event, origin vec.Vec2, segs []Segment) (events []event, wrap []*Segment) {
	for i := range segs {
		s := &segs[i]
		first, second := s.A, s.B
		if Orientation(origin, s.A, s.B) < 0 {
			first, second = s.B, s.A
		}

		start := event{
			kind:  opening,
			seg:   s,
			pt:    first,
			angle: angleOf(origin, first),
			dist:  first.Sub(origin).Length(),
		}
		end := event{
			kind:  closing,
			seg:   s,
			pt:    second,
			angle: angleOf(origin, second),
			dist:  second.Sub(origin).Length(),
		}
		if start.angle > end.angle {
			wrap = append(wrap, s)
		}
		dst = append(dst, start, end)
	}
	return dst, wrap
}
