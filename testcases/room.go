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

var roomCases = Category{
	{
		Name:   "room_with_door",
		Origin: pt(0, 0),
		Walls: append(
			polyline(pt(5, -20), pt(20, -20), pt(20, 20), pt(-20, 20), pt(-20, -20), pt(-5, -20)),
			wall(-5, -20, -5, -25),
		),
	},
	{
		Name:   "pillars",
		Origin: pt(0, 0),
		Walls: concat(
			box(10, -2, 14, 2),
			box(-14, -2, -10, 2),
			box(-2, 10, 2, 14),
			box(-2, -14, 2, -10),
			box(20, 20, 24, 24),
		),
	},
	{
		Name:   "corridor",
		Origin: pt(0, 0),
		Walls: []Wall{
			wall(-100, 3, 100, 3),
			wall(-100, -3, 100, -3),
		},
	},
	{
		Name:   "l_shaped_room",
		Origin: pt(5, 5),
		Walls: polyline(
			pt(0, 0), pt(40, 0), pt(40, 10), pt(10, 10), pt(10, 40), pt(0, 40), pt(0, 0),
		),
		Margin: 50,
	},
	{
		Name:   "comb",
		Origin: pt(0, 0),
		Walls: concat(
			[]Wall{wall(-30, 20, 30, 20)},
			[]Wall{
				wall(-25, 20, -25, 10),
				wall(-15, 20, -15, 10),
				wall(-5, 20, -5, 10),
				wall(5, 20, 5, 10),
				wall(15, 20, 15, 10),
				wall(25, 20, 25, 10),
			},
		),
	},
}

func concat(parts ...[]Wall) []Wall {
	var res []Wall
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}
