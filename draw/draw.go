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

// Package draw renders scenes, obstacles and visibility polygons as PDF
// files, and coverage masks as PNG images.
package draw

import (
	"errors"
	"image/png"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/mask"
	"seehuhn.de/go/visibility/scene"
)

// Padding is the space, in PDF points, left around the picture.
const Padding = 10

var errEmptyView = errors.New("draw: nothing to draw")

// Picture collects everything shown on one page.
// One scene unit is drawn as one PDF point.
type Picture struct {
	// View is the region of the scene shown.  If it is the zero
	// rectangle, the region is chosen to fit all contents.
	View rect.Rect

	Shapes    []scene.Shape
	Obstacles []visibility.Segment
	Polygons  []visibility.Polygon
	Origins   []vec.Vec2

	// YDown indicates that scene coordinates have the y-axis pointing
	// down, as in screen coordinates.
	YDown bool
}

// Colours for the parts of a picture which have no colour of their own.
var (
	polygonFill   = color.DeviceRGB{1, 0.8, 0.8}
	polygonStroke = color.DeviceRGB{0.8, 0, 0}
	obstacleColor = color.DeviceGray(0)
	originFill    = color.DeviceRGB{1, 0, 0}
)

// WritePDF writes the picture to a new single-page PDF file.
func (pic *Picture) WritePDF(fname string) error {
	view := pic.View
	if view == (rect.Rect{}) {
		view = pic.bounds()
	}
	if !(view.URx > view.LLx && view.URy > view.LLy) {
		return errEmptyView
	}

	w := view.URx - view.LLx + 2*Padding
	h := view.URy - view.LLy + 2*Padding
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, w, h)
	page.Fill()

	if pic.YDown {
		page.Transform(matrix.Matrix{1, 0, 0, -1, Padding - view.LLx, Padding + view.URy})
	} else {
		page.Transform(matrix.Matrix{1, 0, 0, 1, Padding - view.LLx, Padding - view.LLy})
	}

	for _, poly := range pic.Polygons {
		if len(poly) < 3 {
			continue
		}
		page.SetFillColor(polygonFill)
		page.SetStrokeColor(polygonStroke)
		page.SetLineWidth(0.5)
		drawPath(page, poly.Path())
		page.FillAndStroke()
	}

	for _, s := range pic.Shapes {
		drawShape(page, s)
	}

	page.SetLineWidth(1.5)
	for _, seg := range pic.Obstacles {
		col, ok := ParseColor(seg.Color)
		if !ok {
			col = obstacleColor
		}
		page.SetStrokeColor(col)
		page.MoveTo(seg.A.X, seg.A.Y)
		page.LineTo(seg.B.X, seg.B.Y)
		page.Stroke()
	}

	page.SetFillColor(originFill)
	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.5)
	for _, o := range pic.Origins {
		drawPath(page, marker(o, 3))
		page.FillAndStroke()
	}

	return page.Close()
}

func drawShape(page *document.Page, s scene.Shape) {
	var stroke, fill string
	switch s := s.(type) {
	case *scene.Circle:
		stroke, fill = s.Stroke, s.Fill
	case *scene.Rect:
		stroke, fill = s.Stroke, s.Fill
	case *scene.Line:
		fill = s.Color
	case *scene.Text:
		stroke, fill = s.Stroke, s.Fill
	}
	fc, doFill := ParseColor(fill)
	sc, doStroke := ParseColor(stroke)
	if !doFill && !doStroke {
		return
	}

	page.SetLineWidth(1)
	drawPath(page, s.Outline())
	switch {
	case doFill && doStroke:
		page.SetFillColor(fc)
		page.SetStrokeColor(sc)
		page.FillAndStroke()
	case doFill:
		page.SetFillColor(fc)
		page.Fill()
	default:
		page.SetStrokeColor(sc)
		page.Stroke()
	}
}

// drawPath appends p to the current PDF path.  Quadratic segments are
// raised to cubics, since PDF has no quadratic curves.
func drawPath(page *document.Page, p *path.Data) {
	var cur vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			page.MoveTo(cur.X, cur.Y)
			k++
		case path.CmdLineTo:
			cur = p.Coords[k]
			page.LineTo(cur.X, cur.Y)
			k++
		case path.CmdQuadTo:
			c, end := p.Coords[k], p.Coords[k+1]
			c1 := cur.Add(c.Sub(cur).Mul(2.0 / 3))
			c2 := end.Add(c.Sub(end).Mul(2.0 / 3))
			page.CurveTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			cur = end
			k += 2
		case path.CmdCubeTo:
			c1, c2, end := p.Coords[k], p.Coords[k+1], p.Coords[k+2]
			page.CurveTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			cur = end
			k += 3
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

// marker returns a small diamond around p.
func marker(p vec.Vec2, r float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: p.X + r, Y: p.Y}).
		LineTo(vec.Vec2{X: p.X, Y: p.Y + r}).
		LineTo(vec.Vec2{X: p.X - r, Y: p.Y}).
		LineTo(vec.Vec2{X: p.X, Y: p.Y - r}).
		Close()
}

func (pic *Picture) bounds() rect.Rect {
	var r rect.Rect
	first := true
	add := func(b rect.Rect) {
		if first {
			r = b
			first = false
			return
		}
		r.LLx = min(r.LLx, b.LLx)
		r.LLy = min(r.LLy, b.LLy)
		r.URx = max(r.URx, b.URx)
		r.URy = max(r.URy, b.URy)
	}
	point := func(p vec.Vec2) {
		add(rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y})
	}

	for _, s := range pic.Shapes {
		add(s.Bounds())
	}
	for _, seg := range pic.Obstacles {
		point(seg.A)
		point(seg.B)
	}
	for _, poly := range pic.Polygons {
		if len(poly) > 0 {
			add(poly.Bounds())
		}
	}
	for _, o := range pic.Origins {
		point(o)
	}
	return r
}

// ParseColor converts an SVG colour name or a "#rgb" / "#rrggbb" hex
// string into a PDF colour.  The second return value is false for
// "none", for empty strings and for strings which cannot be parsed.
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, false
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return nil, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, false
		}
		return color.DeviceRGB{
			float64(v>>16&0xFF) / 255,
			float64(v>>8&0xFF) / 255,
			float64(v&0xFF) / 255,
		}, true
	}
	c, ok := colornames.Map[s]
	if !ok {
		return nil, false
	}
	return color.DeviceRGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}, true
}

// WritePNG encodes the mask as an 8-bit grayscale PNG image.
func WritePNG(w io.Writer, m *mask.Mask) error {
	return png.Encode(w, m.Gray())
}
