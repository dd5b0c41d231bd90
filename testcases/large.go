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
	"math"
	"math/rand/v2"
)

// largeCases contain many walls, for benchmarks and for checking the
// sweep on non-trivial tree shapes.
var largeCases = Category{
	{
		Name:   "grid_10",
		Origin: pt(0, 0),
		Walls:  scatter(1, 10, 50),
	},
	{
		Name:   "grid_40",
		Origin: pt(3, -7),
		Walls:  scatter(2, 40, 25),
	},
	{
		Name:   "ring",
		Origin: pt(0, 0),
		Walls:  ring(200, 100),
	},
}

// scatter places one random wall inside each cell of an n×n grid centred
// on the origin.  The cell containing the origin is left empty.  Walls in
// different cells never meet.
func scatter(seed uint64, n int, cell float64) []Wall {
	rng := rand.New(rand.NewPCG(seed, 0x5eed))
	half := float64(n) * cell / 2

	var walls []Wall
	for i := range n {
		for j := range n {
			x0 := float64(i)*cell - half
			y0 := float64(j)*cell - half
			if x0 <= 0 && 0 < x0+cell && y0 <= 0 && 0 < y0+cell {
				continue
			}
			inset := cell / 10
			span := cell - 2*inset
			a := pt(x0+inset+rng.Float64()*span, y0+inset+rng.Float64()*span)
			b := pt(x0+inset+rng.Float64()*span, y0+inset+rng.Float64()*span)
			walls = append(walls, Wall{A: a, B: b})
		}
	}
	return walls
}

// ring builds n walls along a circle of radius r, with small gaps in
// between.
func ring(n int, r float64) []Wall {
	walls := make([]Wall, n)
	step := 2 * math.Pi / float64(n)
	for i := range n {
		a0 := float64(i)*step + 0.1*step
		a1 := float64(i+1)*step - 0.1*step
		walls[i] = Wall{
			A: pt(r*math.Cos(a0), r*math.Sin(a0)),
			B: pt(r*math.Cos(a1), r*math.Sin(a1)),
		}
	}
	return walls
}
