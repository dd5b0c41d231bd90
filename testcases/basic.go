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

var basicCases = Category{
	{
		Name:   "empty",
		Origin: pt(0, 0),
	},
	{
		Name:   "single_wall",
		Origin: pt(0, 0),
		Walls:  []Wall{wall(10, -5, 10, 5)},
	},
	{
		Name:   "single_wall_reversed",
		Origin: pt(0, 0),
		Walls:  []Wall{wall(10, 5, 10, -5)},
	},
	{
		Name:   "single_wall_above",
		Origin: pt(0, 0),
		Walls:  []Wall{wall(-5, 10, 5, 10)},
	},
	{
		Name:   "parallel_walls",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(10, -5, 10, 5),
			wall(20, -3, 20, 3),
		},
	},
	{
		Name:   "partial_occlusion",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(10, 0, 10, 10),
			wall(20, -10, 20, 5),
		},
	},
	{
		Name:   "staggered_walls",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(10, 10, 20, 10),
			wall(-20, 15, -5, 15),
			wall(-10, -10, 10, -12),
			wall(30, -5, 30, 25),
		},
	},
	{
		Name:   "closed_box",
		Origin: pt(0, 0),
		Walls:  box(-10, -10, 10, 10),
	},
	{
		Name:   "crossing_walls",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(8, -4, 12, 4),
			wall(12, -4, 8, 4),
		},
	},
	{
		Name:   "overlapping_boxes",
		Origin: pt(0, 0),
		Walls:  concat(box(-10, -10, 10, 10), box(5, 5, 25, 25)),
	},
	{
		Name:   "offset_origin",
		Origin: pt(37.5, -12.25),
		Walls: []Wall{
			wall(50, -20, 50, 0),
			wall(20, 10, 40, 10),
		},
		Margin: 100,
	},
}
