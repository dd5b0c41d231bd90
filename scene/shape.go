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
	"fmt"
	"math"
	"unicode/utf8"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/visibility"
)

// Shape is one object of a scene.  The concrete types are [*Circle],
// [*Rect], [*Line] and [*Text].
type Shape interface {
	// ShapeID returns the identifier given in the scene file.
	ShapeID() int

	// Kind returns the single-letter scene file command for the shape.
	Kind() byte

	// Obstacles converts the shape into opaque segments.  Fresh segment
	// IDs are obtained from next.
	Obstacles(orient Orientation, next func() int) []visibility.Segment

	// Area returns the nominal area of the shape.
	Area() float64

	// Inside reports whether the shape is selected by a bomb with the
	// given visibility polygon.
	Inside(poly visibility.Polygon) bool

	// Bounds returns a rectangle enclosing the shape.
	Bounds() rect.Rect

	// Outline returns a closed path whose area is Area().
	Outline() *path.Data

	// Clone returns a copy of the shape with a new ID, moved by d.
	Clone(id int, d vec.Vec2) Shape

	// Paint sets all colours of the shape to col.
	Paint(col string)

	isShape()
}

// Orientation selects the chord used when a circle becomes an obstacle.
type Orientation byte

const (
	Horizontal Orientation = 'h'
	Vertical   Orientation = 'v'
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%q)", byte(o))
	}
}

// Circle is a filled disc.
type Circle struct {
	ID     int
	Center vec.Vec2
	R      float64
	Stroke string
	Fill   string
}

// Rect is an axis-aligned rectangle with corner (X, Y).
type Rect struct {
	ID     int
	Corner vec.Vec2
	W, H   float64
	Stroke string
	Fill   string
}

// Line is a straight line segment.
type Line struct {
	ID    int
	A, B  vec.Vec2
	Color string
}

// Anchor tells where the anchor point of a text lies along the text.
type Anchor byte

const (
	AnchorStart  Anchor = 'i'
	AnchorMiddle Anchor = 'm'
	AnchorEnd    Anchor = 'f'
)

// Text is a single line of text.  For visibility purposes, a text is a
// horizontal bar whose length is proportional to the number of
// characters.
type Text struct {
	ID      int
	At      vec.Vec2
	Anchor  Anchor
	Content string
	Stroke  string
	Fill    string
}

// Sizes used for the geometric stand-ins of lines and texts.
const (
	charWidth = 10 // length of the bar per character of text
	barWidth  = 2  // thickness of lines and text bars
)

func (*Circle) isShape() {}
func (*Rect) isShape()   {}
func (*Line) isShape()   {}
func (*Text) isShape()   {}

func (c *Circle) ShapeID() int { return c.ID }
func (r *Rect) ShapeID() int   { return r.ID }
func (l *Line) ShapeID() int   { return l.ID }
func (t *Text) ShapeID() int   { return t.ID }

func (*Circle) Kind() byte { return 'c' }
func (*Rect) Kind() byte   { return 'r' }
func (*Line) Kind() byte   { return 'l' }
func (*Text) Kind() byte   { return 't' }

// Obstacles returns one chord through the centre, parallel to the x-axis
// for Horizontal and to the y-axis otherwise.
func (c *Circle) Obstacles(orient Orientation, next func() int) []visibility.Segment {
	d := vec.Vec2{X: c.R}
	if orient == Vertical {
		d = vec.Vec2{Y: c.R}
	}
	return []visibility.Segment{
		{ID: next(), A: c.Center.Sub(d), B: c.Center.Add(d), Color: c.Stroke},
	}
}

// Obstacles returns the four edges, starting with the edge through the
// corner which runs along the x-axis.
func (r *Rect) Obstacles(_ Orientation, next func() int) []visibility.Segment {
	p := r.corners()
	res := make([]visibility.Segment, 4)
	for i := range p {
		res[i] = visibility.Segment{ID: next(), A: p[i], B: p[(i+1)%4], Color: r.Stroke}
	}
	return res
}

func (l *Line) Obstacles(_ Orientation, next func() int) []visibility.Segment {
	return []visibility.Segment{{ID: next(), A: l.A, B: l.B, Color: l.Color}}
}

func (t *Text) Obstacles(_ Orientation, next func() int) []visibility.Segment {
	a, b := t.bar()
	return []visibility.Segment{{ID: next(), A: a, B: b, Color: t.Stroke}}
}

func (r *Rect) corners() [4]vec.Vec2 {
	x, y := r.Corner.X, r.Corner.Y
	return [4]vec.Vec2{
		{X: x, Y: y},
		{X: x + r.W, Y: y},
		{X: x + r.W, Y: y + r.H},
		{X: x, Y: y + r.H},
	}
}

// bar returns the endpoints of the horizontal segment standing in for the
// text.
func (t *Text) bar() (a, b vec.Vec2) {
	length := float64(charWidth * utf8.RuneCountInString(t.Content))
	x := t.At.X
	switch t.Anchor {
	case AnchorStart:
		// x stays at the start
	case AnchorEnd, 'e':
		x -= length
	default:
		x -= length / 2
	}
	return vec.Vec2{X: x, Y: t.At.Y}, vec.Vec2{X: x + length, Y: t.At.Y}
}

func (c *Circle) Area() float64 { return math.Pi * c.R * c.R }
func (r *Rect) Area() float64   { return math.Abs(r.W * r.H) }
func (l *Line) Area() float64   { return barWidth * l.B.Sub(l.A).Length() }
func (t *Text) Area() float64 {
	return barWidth * charWidth * float64(utf8.RuneCountInString(t.Content))
}

// Inside reports whether the centre lies in poly.
func (c *Circle) Inside(poly visibility.Polygon) bool { return poly.Contains(c.Center) }

// Inside reports whether the corner lies in poly.
func (r *Rect) Inside(poly visibility.Polygon) bool { return poly.Contains(r.Corner) }

// Inside reports whether the segment meets poly.
func (l *Line) Inside(poly visibility.Polygon) bool { return poly.IntersectsSegment(l.A, l.B) }

// Inside reports whether the anchor point lies in poly.
func (t *Text) Inside(poly visibility.Polygon) bool { return poly.Contains(t.At) }

func (c *Circle) Bounds() rect.Rect {
	return rect.Rect{
		LLx: c.Center.X - c.R, LLy: c.Center.Y - c.R,
		URx: c.Center.X + c.R, URy: c.Center.Y + c.R,
	}
}

func (r *Rect) Bounds() rect.Rect {
	p := r.corners()
	return rect.Rect{
		LLx: min(p[0].X, p[2].X), LLy: min(p[0].Y, p[2].Y),
		URx: max(p[0].X, p[2].X), URy: max(p[0].Y, p[2].Y),
	}
}

func (l *Line) Bounds() rect.Rect {
	return barBounds(l.A, l.B)
}

func (t *Text) Bounds() rect.Rect {
	return barBounds(t.bar())
}

func barBounds(a, b vec.Vec2) rect.Rect {
	const h = barWidth / 2
	return rect.Rect{
		LLx: min(a.X, b.X) - h, LLy: min(a.Y, b.Y) - h,
		URx: max(a.X, b.X) + h, URy: max(a.Y, b.Y) + h,
	}
}

// Outline approximates the circle by four cubic Bézier arcs.
func (c *Circle) Outline() *path.Data {
	const k = 0.5522847498
	cx, cy, r := c.Center.X, c.Center.Y, c.R
	kr := k * r
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: cx + r, Y: cy}).
		CubeTo(vec.Vec2{X: cx + r, Y: cy + kr}, vec.Vec2{X: cx + kr, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r}).
		CubeTo(vec.Vec2{X: cx - kr, Y: cy + r}, vec.Vec2{X: cx - r, Y: cy + kr}, vec.Vec2{X: cx - r, Y: cy}).
		CubeTo(vec.Vec2{X: cx - r, Y: cy - kr}, vec.Vec2{X: cx - kr, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r}).
		CubeTo(vec.Vec2{X: cx + kr, Y: cy - r}, vec.Vec2{X: cx + r, Y: cy - kr}, vec.Vec2{X: cx + r, Y: cy}).
		Close()
}

func (r *Rect) Outline() *path.Data {
	p := r.corners()
	return (&path.Data{}).MoveTo(p[0]).LineTo(p[1]).LineTo(p[2]).LineTo(p[3]).Close()
}

// Outline returns a bar of width barWidth centred on the line.
func (l *Line) Outline() *path.Data {
	return barOutline(l.A, l.B)
}

// Outline returns the bar standing in for the text.
func (t *Text) Outline() *path.Data {
	return barOutline(t.bar())
}

func barOutline(a, b vec.Vec2) *path.Data {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return &path.Data{}
	}
	n := vec.Vec2{X: -d.Y, Y: d.X}.Mul(barWidth / 2 / length)
	return (&path.Data{}).
		MoveTo(a.Sub(n)).
		LineTo(b.Sub(n)).
		LineTo(b.Add(n)).
		LineTo(a.Add(n)).
		Close()
}

func (c *Circle) Clone(id int, d vec.Vec2) Shape {
	res := *c
	res.ID = id
	res.Center = c.Center.Add(d)
	return &res
}

func (r *Rect) Clone(id int, d vec.Vec2) Shape {
	res := *r
	res.ID = id
	res.Corner = r.Corner.Add(d)
	return &res
}

func (l *Line) Clone(id int, d vec.Vec2) Shape {
	res := *l
	res.ID = id
	res.A = l.A.Add(d)
	res.B = l.B.Add(d)
	return &res
}

func (t *Text) Clone(id int, d vec.Vec2) Shape {
	res := *t
	res.ID = id
	res.At = t.At.Add(d)
	return &res
}

func (c *Circle) Paint(col string) { c.Stroke, c.Fill = col, col }
func (r *Rect) Paint(col string)   { r.Stroke, r.Fill = col, col }
func (l *Line) Paint(col string)   { l.Color = col }
func (t *Text) Paint(col string)   { t.Stroke, t.Fill = col, col }
