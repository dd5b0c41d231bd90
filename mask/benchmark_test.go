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

package mask

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/testcases"
)

// BenchmarkRasteriserO benchmarks our rasteriser drawing an "O" shape.
func BenchmarkRasteriserO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			c := float64(size) / 2
			p := oPath(c, c, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.Fill(p, EvenOdd, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO benchmarks x/image/vector drawing the same shape.
func BenchmarkVectorO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			c := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				vectorCircle(r, c, c, outerR, false)
				vectorCircle(r, c, c, innerR, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkMaskPolygon measures rasterising a visibility polygon into a
// mask and computing the visible fraction of a shape.
func BenchmarkMaskPolygon(b *testing.B) {
	tc := testcases.All["large"][1]
	walls := make([]visibility.Segment, len(tc.Walls))
	for i, w := range tc.Walls {
		walls[i] = visibility.Segment{ID: i + 1, A: w.A, B: w.B}
	}
	poly, err := visibility.Compute(tc.Origin, walls, nil)
	if err != nil {
		b.Fatal(err)
	}
	p := poly.Path()
	probe := square(-100, -100, 100, 100)

	m, err := New(poly.Bounds(), 0.5)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		clear(m.Pix)
		m.Fill(p)
		m.Fraction(probe)
	}
}

func vectorCircle(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	if clockwise {
		r.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	r.ClosePath()
}
