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

// degenerateCases contain configurations which stress the tolerance
// handling: shared endpoints, collinear walls, walls touching the origin
// and walls aligned with the start direction of the sweep.
var degenerateCases = Category{
	{
		Name:   "through_origin",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(-10, -10, 10, 10),
			wall(15, -5, 15, 5),
		},
	},
	{
		Name:   "endpoint_at_origin",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(0, 0, 10, 10),
			wall(-8, 3, -8, 9),
		},
	},
	{
		Name:   "zero_length",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(5, 5, 5, 5),
			wall(10, -5, 10, 5),
		},
	},
	{
		Name:   "radial",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(5, 5, 15, 15),
			wall(-10, -5, -10, 5),
		},
	},
	{
		Name:   "on_start_ray",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(10, 0, 10, 10),
			wall(20, -10, 20, 0),
		},
	},
	{
		Name:   "crossing_start_ray",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(10, -1, 12, 1),
			wall(30, 5, 30, -5),
		},
	},
	{
		Name:   "shared_endpoint",
		Origin: pt(0, 0),
		Walls: polyline(
			pt(10, -10), pt(15, 0), pt(10, 10),
		),
	},
	{
		Name:   "collinear_walls",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(-10, 10, 0, 10),
			wall(0, 10, 10, 10),
			wall(10, 10, 20, 10),
		},
	},
	{
		Name:   "duplicate_wall",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(-5, -10, 5, -10),
			wall(-5, -10, 5, -10),
		},
	},
	{
		Name:   "aligned_endpoints",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(10, 10, 10, 20),
			wall(20, 20, 30, 20),
		},
	},
}
