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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// IDs of the four synthetic frame edges.  User obstacles should use
// non-negative IDs.
const (
	FrameBottom = -1
	FrameRight  = -2
	FrameTop    = -3
	FrameLeft   = -4
)

// DefaultFrameMargin is the distance added on every side of the scene when
// building the bounding frame.
const DefaultFrameMargin = 500

// FrameRect returns the rectangle enclosed by the synthetic frame.
//
// The rectangle is the bounding box of the origin and all obstacle
// endpoints, grown on every side by half its larger dimension plus margin.
func FrameRect(origin vec.Vec2, obstacles []Segment, margin float64) rect.Rect {
	bbox := rect.Rect{LLx: origin.X, LLy: origin.Y, URx: origin.X, URy: origin.Y}
	for _, s := range obstacles {
		for _, p := range [2]vec.Vec2{s.A, s.B} {
			bbox.LLx = min(bbox.LLx, p.X)
			bbox.LLy = min(bbox.LLy, p.Y)
			bbox.URx = max(bbox.URx, p.X)
			bbox.URy = max(bbox.URy, p.Y)
		}
	}

	grow := max(bbox.URx-bbox.LLx, bbox.URy-bbox.LLy)/2 + margin
	return rect.Rect{
		LLx: bbox.LLx - grow,
		LLy: bbox.LLy - grow,
		URx: bbox.URx + grow,
		URy: bbox.URy + grow,
	}
}

// Frame returns the four edges of the synthetic frame, in the order
// bottom, right, top, left.  The edges run counter-clockwise around the
// frame rectangle.
func Frame(origin vec.Vec2, obstacles []Segment, margin float64) [4]Segment {
	return frameEdges(FrameRect(origin, obstacles, margin))
}

func frameEdges(r rect.Rect) [4]Segment {
	ll := vec.Vec2{X: r.LLx, Y: r.LLy}
	lr := vec.Vec2{X: r.URx, Y: r.LLy}
	ur := vec.Vec2{X: r.URx, Y: r.URy}
	ul := vec.Vec2{X: r.LLx, Y: r.URy}
	return [4]Segment{
		{ID: FrameBottom, A: ll, B: lr},
		{ID: FrameRight, A: lr, B: ur},
		{ID: FrameTop, A: ur, B: ul},
		{ID: FrameLeft, A: ul, B: ll},
	}
}
