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
	"slices"

	"github.com/dhconnelly/rtreego"

	"seehuhn.de/go/geom/vec"
)

// segmentBox is the R-tree entry for one obstacle.
type segmentBox struct {
	idx int
	bb  rtreego.Rect
}

func (b *segmentBox) Bounds() rtreego.Rect {
	return b.bb
}

func newSegmentBox(idx int, seg *Segment) *segmentBox {
	// Pad by Epsilon, so that axis-parallel segments have positive size
	// and touching boxes overlap.
	bb, _ := rtreego.NewRectFromPoints(
		rtreego.Point{min(seg.A.X, seg.B.X) - Epsilon, min(seg.A.Y, seg.B.Y) - Epsilon},
		rtreego.Point{max(seg.A.X, seg.B.X) + Epsilon, max(seg.A.Y, seg.B.Y) + Epsilon},
	)
	return &segmentBox{idx: idx, bb: bb}
}

// splitCrossings cuts every obstacle at the points where it crosses
// another one.  Afterwards the nearest obstacle along the sweep ray can
// only change at an endpoint.
//
// Pieces keep the ID and colour of the obstacle they came from.  They are
// returned in input order, with the pieces of each obstacle running from
// A to B.  Collinear overlaps are left alone.
func splitCrossings(segs []Segment) []Segment {
	if len(segs) < 2 {
		return segs
	}

	objs := make([]rtreego.Spatial, len(segs))
	for i := range segs {
		objs[i] = newSegmentBox(i, &segs[i])
	}
	tree := rtreego.NewTree(2, 4, 16, objs...)

	cuts := make([][]vec.Vec2, len(segs))
	for i := range segs {
		a := &segs[i]
		for _, obj := range tree.SearchIntersect(objs[i].Bounds()) {
			j := obj.(*segmentBox).idx
			if j <= i {
				continue
			}
			b := &segs[j]
			if !SegmentsIntersect(a.A, a.B, b.A, b.B) {
				continue
			}
			p, ok := SegmentIntersectionPoint(a.A, a.B, b.A, b.B)
			if !ok {
				continue
			}
			cuts[i] = addCut(cuts[i], a, p)
			cuts[j] = addCut(cuts[j], b, p)
		}
	}

	res := make([]Segment, 0, len(segs))
	for i, seg := range segs {
		if len(cuts[i]) == 0 {
			res = append(res, seg)
			continue
		}

		d := seg.B.Sub(seg.A)
		pts := cuts[i]
		slices.SortFunc(pts, func(p, q vec.Vec2) int {
			tp, tq := p.Sub(seg.A).Dot(d), q.Sub(seg.A).Dot(d)
			switch {
			case tp < tq:
				return -1
			case tp > tq:
				return 1
			}
			return 0
		})

		start := seg.A
		for _, p := range pts {
			if p.Sub(start).Length() <= Epsilon {
				continue
			}
			res = append(res, Segment{ID: seg.ID, A: start, B: p, Color: seg.Color})
			start = p
		}
		res = append(res, Segment{ID: seg.ID, A: start, B: seg.B, Color: seg.Color})
	}
	return res
}

// addCut records p as a cut point of seg, unless it is an endpoint.
func addCut(cuts []vec.Vec2, seg *Segment, p vec.Vec2) []vec.Vec2 {
	if p.Sub(seg.A).Length() <= Epsilon || p.Sub(seg.B).Length() <= Epsilon {
		return cuts
	}
	return append(cuts, p)
}
