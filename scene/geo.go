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

// Package scene reads scenes of simple shapes, turns selected shapes into
// visibility obstacles and applies "bombs" to them.
//
// A scene is given in a .geo file, one shape per line:
//
//	c id x y r stroke fill          circle
//	r id x y w h stroke fill        rectangle
//	l id x1 y1 x2 y2 color          line
//	t id x y stroke fill a text...  text, a is one of i, m, f
//	ts family weight size           font for subsequent texts
//
// Commands are given in a .qry file; see [ReadCommands].
package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Scene is an ordered collection of shapes.
type Scene struct {
	Shapes []Shape
	Font   Font
}

// Font describes the text style most recently set by a "ts" line.
type Font struct {
	Family string
	Weight string
	Size   float64
}

// DefaultFont is used until a scene file sets a font.
var DefaultFont = Font{Family: "sans-serif", Weight: "normal", Size: 12}

// ParseError reports a malformed line in a scene or command file.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errUnknownCommand = errors.New("unknown command")
	errArgCount       = errors.New("wrong number of arguments")
)

// ReadGeo reads a scene from r.
func ReadGeo(r io.Reader) (*Scene, error) {
	sc := &Scene{Font: DefaultFont}
	err := forEachLine(r, func(fields []string, rest func(int) string) error {
		switch fields[0] {
		case "c":
			if len(fields) != 7 {
				return errArgCount
			}
			var c Circle
			var err error
			c.ID, err = strconv.Atoi(fields[1])
			if err != nil {
				return err
			}
			v, err := parseFloats(fields[2:5])
			if err != nil {
				return err
			}
			c.Center = vec.Vec2{X: v[0], Y: v[1]}
			c.R = v[2]
			c.Stroke, c.Fill = fields[5], fields[6]
			sc.Shapes = append(sc.Shapes, &c)

		case "r":
			if len(fields) != 8 {
				return errArgCount
			}
			var r Rect
			var err error
			r.ID, err = strconv.Atoi(fields[1])
			if err != nil {
				return err
			}
			v, err := parseFloats(fields[2:6])
			if err != nil {
				return err
			}
			r.Corner = vec.Vec2{X: v[0], Y: v[1]}
			r.W, r.H = v[2], v[3]
			r.Stroke, r.Fill = fields[6], fields[7]
			sc.Shapes = append(sc.Shapes, &r)

		case "l":
			if len(fields) != 7 {
				return errArgCount
			}
			var l Line
			var err error
			l.ID, err = strconv.Atoi(fields[1])
			if err != nil {
				return err
			}
			v, err := parseFloats(fields[2:6])
			if err != nil {
				return err
			}
			l.A = vec.Vec2{X: v[0], Y: v[1]}
			l.B = vec.Vec2{X: v[2], Y: v[3]}
			l.Color = fields[6]
			sc.Shapes = append(sc.Shapes, &l)

		case "t":
			if len(fields) < 7 {
				return errArgCount
			}
			var t Text
			var err error
			t.ID, err = strconv.Atoi(fields[1])
			if err != nil {
				return err
			}
			v, err := parseFloats(fields[2:4])
			if err != nil {
				return err
			}
			t.At = vec.Vec2{X: v[0], Y: v[1]}
			t.Stroke, t.Fill = fields[4], fields[5]
			if len(fields[6]) != 1 {
				return fmt.Errorf("invalid anchor %q", fields[6])
			}
			t.Anchor = Anchor(fields[6][0])
			t.Content = rest(7)
			sc.Shapes = append(sc.Shapes, &t)

		case "ts":
			if len(fields) != 4 {
				return errArgCount
			}
			size, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return err
			}
			sc.Font = Font{Family: fields[1], Weight: fields[2], Size: size}

		default:
			return fmt.Errorf("%w %q", errUnknownCommand, fields[0])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Find returns the shape with the given ID.
func (sc *Scene) Find(id int) (Shape, bool) {
	for _, s := range sc.Shapes {
		if s.ShapeID() == id {
			return s, true
		}
	}
	return nil, false
}

// Bounds returns the smallest rectangle enclosing all shapes.
func (sc *Scene) Bounds() rect.Rect {
	var r rect.Rect
	for i, s := range sc.Shapes {
		b := s.Bounds()
		if i == 0 {
			r = b
			continue
		}
		r.LLx = min(r.LLx, b.LLx)
		r.LLy = min(r.LLy, b.LLy)
		r.URx = max(r.URx, b.URx)
		r.URy = max(r.URy, b.URy)
	}
	return r
}

// forEachLine splits r into lines and calls fn for each line which is
// neither blank nor a comment.  The rest function returns the original
// text of the line starting at the given field, with inner spacing kept.
func forEachLine(r io.Reader, fn func(fields []string, rest func(int) string) error) error {
	s := bufio.NewScanner(r)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := s.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		rest := func(k int) string {
			text := line
			for range k {
				text = strings.TrimLeft(text, " \t")
				i := strings.IndexAny(text, " \t")
				if i < 0 {
					return ""
				}
				text = text[i:]
			}
			return strings.TrimSpace(text)
		}
		if err := fn(fields, rest); err != nil {
			return &ParseError{Line: lineNo, Err: err}
		}
	}
	return s.Err()
}

func parseFloats(fields []string) ([]float64, error) {
	res := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}
