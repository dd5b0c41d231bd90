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

// Command export writes the test cases, together with the computed
// visibility polygons, to JSON so that they can be checked by external
// tools.  Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(category, tc)
			if err != nil {
				panic(err)
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name    string          `json:"name"`
	Origin  [2]float64      `json:"origin"`
	Margin  float64         `json:"margin,omitempty"`
	Walls   [][2][2]float64 `json:"walls"`
	Polygon [][2]float64    `json:"polygon"`
	Area    float64         `json:"area"`
}

func toJSON(category string, tc testcases.TestCase) (jsonTestCase, error) {
	walls := make([]visibility.Segment, len(tc.Walls))
	jtc := jsonTestCase{
		Name:   category + "_" + tc.Name,
		Origin: point(tc.Origin),
		Margin: tc.Margin,
		Walls:  make([][2][2]float64, len(tc.Walls)),
	}
	for i, w := range tc.Walls {
		walls[i] = visibility.Segment{ID: i + 1, A: w.A, B: w.B}
		jtc.Walls[i] = [2][2]float64{point(w.A), point(w.B)}
	}

	poly, err := visibility.Compute(tc.Origin, walls, &visibility.Options{FrameMargin: tc.Margin})
	if err != nil {
		return jtc, err
	}
	jtc.Polygon = make([][2]float64, len(poly))
	for i, p := range poly {
		jtc.Polygon[i] = point(p)
	}
	jtc.Area = poly.Area()
	return jtc, nil
}

func point(p vec.Vec2) [2]float64 {
	return [2]float64{p.X, p.Y}
}
