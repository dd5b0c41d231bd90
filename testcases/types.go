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

package testcases

import (
	"seehuhn.de/go/geom/vec"
)

// TestCase describes a visibility scene.
type TestCase struct {
	Name   string   // lowercase a-z, 0-9 and _ only
	Origin vec.Vec2 // the viewpoint
	Walls  []Wall   // the obstacles
	Margin float64  // frame margin (zero-value means the default)
}

// Wall is an opaque line segment.
type Wall struct {
	A, B vec.Vec2
}

// Category is a group of related test cases.
type Category []TestCase

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// wall is a helper to create a Wall from endpoint coordinates.
func wall(x1, y1, x2, y2 float64) Wall {
	return Wall{A: pt(x1, y1), B: pt(x2, y2)}
}

// box returns the four walls of an axis-aligned rectangle,
// in counter-clockwise order starting at the lower left corner.
func box(x1, y1, x2, y2 float64) []Wall {
	return []Wall{
		wall(x1, y1, x2, y1),
		wall(x2, y1, x2, y2),
		wall(x2, y2, x1, y2),
		wall(x1, y2, x1, y1),
	}
}

// polyline connects consecutive points by walls.
func polyline(pts ...vec.Vec2) []Wall {
	var walls []Wall
	for i := 1; i < len(pts); i++ {
		walls = append(walls, Wall{A: pts[i-1], B: pts[i]})
	}
	return walls
}
