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

package scene

import (
	"errors"
	"strings"
	"testing"

	"seehuhn.de/go/geom/vec"
)

const testGeo = `# a small scene
c 1 50 60 10 black red
r 2 100 100 40 20 blue none

l 3 0 0 30 40 green
ts serif bold 16
t 4 200 50 black yellow m hello  world
`

func TestReadGeo(t *testing.T) {
	sc, err := ReadGeo(strings.NewReader(testGeo))
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Shapes) != 4 {
		t.Fatalf("got %d shapes, want 4", len(sc.Shapes))
	}

	c, ok := sc.Shapes[0].(*Circle)
	if !ok || c.ID != 1 || c.Center != (vec.Vec2{X: 50, Y: 60}) || c.R != 10 ||
		c.Stroke != "black" || c.Fill != "red" {
		t.Errorf("wrong circle %+v", sc.Shapes[0])
	}
	r, ok := sc.Shapes[1].(*Rect)
	if !ok || r.ID != 2 || r.Corner != (vec.Vec2{X: 100, Y: 100}) || r.W != 40 || r.H != 20 {
		t.Errorf("wrong rectangle %+v", sc.Shapes[1])
	}
	l, ok := sc.Shapes[2].(*Line)
	if !ok || l.ID != 3 || l.B != (vec.Vec2{X: 30, Y: 40}) || l.Color != "green" {
		t.Errorf("wrong line %+v", sc.Shapes[2])
	}
	txt, ok := sc.Shapes[3].(*Text)
	if !ok || txt.ID != 4 || txt.Anchor != AnchorMiddle || txt.Content != "hello  world" {
		t.Errorf("wrong text %+v", sc.Shapes[3])
	}

	if sc.Font != (Font{Family: "serif", Weight: "bold", Size: 16}) {
		t.Errorf("font %+v", sc.Font)
	}

	s, ok := sc.Find(3)
	if !ok || s != sc.Shapes[2] {
		t.Error("Find(3) failed")
	}
	if _, ok := sc.Find(99); ok {
		t.Error("Find(99) succeeded")
	}
}

func TestReadGeoErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		line int
		err  error
	}{
		{"unknown", "c 1 0 0 1 a b\nx 2\n", 2, errUnknownCommand},
		{"short_circle", "c 1 0 0\n", 1, errArgCount},
		{"long_line", "l 1 0 0 1 1 red extra\n", 1, errArgCount},
		{"bad_number", "\n\nr 1 0 0 abc 1 a b\n", 3, nil},
		{"bad_id", "c x 0 0 1 a b\n", 1, nil},
		{"bad_anchor", "t 1 0 0 a b mid text\n", 1, nil},
		{"bad_font", "ts serif bold large\n", 1, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadGeo(strings.NewReader(tc.in))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want a ParseError", err)
			}
			if pe.Line != tc.line {
				t.Errorf("error on line %d, want %d", pe.Line, tc.line)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Errorf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestSceneBounds(t *testing.T) {
	sc, err := ReadGeo(strings.NewReader(testGeo))
	if err != nil {
		t.Fatal(err)
	}
	b := sc.Bounds()
	// line from (0,0) widened by half the bar width; text "hello  world"
	// is 12 characters centred on x = 200
	if b.LLx != -1 || b.LLy != -1 || b.URx != 261 || b.URy != 120 {
		t.Errorf("bounds %+v", b)
	}
}
