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

// Package mask turns visibility polygons into raster coverage masks.
//
// A [Mask] covers a rectangle of the plane with a grid of pixels.  Paths
// filled into the mask add coverage; the mask can then be used to measure
// how much of another path lies inside the covered region, or be exported
// as a grayscale image.
package mask

import (
	"errors"
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// MaxPixels limits the size of a mask.
const MaxPixels = 1 << 26

var errEmpty = errors.New("empty mask region")

// Mask is a coverage raster over a rectangle of the plane.
//
// Pixel (x, y) covers the world square with lower-left corner
// World.LL + (x, y)/Resolution.  Coverage values are in [0, 1].
type Mask struct {
	World      rect.Rect
	Resolution float64 // pixels per world unit
	Width      int
	Height     int
	Pix        []float32 // row-major, row 0 at World.LLy

	r *Rasteriser
}

// New allocates an empty mask for the given world rectangle.
func New(world rect.Rect, resolution float64) (*Mask, error) {
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("mask: invalid resolution %g", resolution)
	}
	if !(world.URx > world.LLx && world.URy > world.LLy) {
		return nil, fmt.Errorf("mask: %w", errEmpty)
	}
	w := int(math.Ceil((world.URx - world.LLx) * resolution))
	h := int(math.Ceil((world.URy - world.LLy) * resolution))
	if w <= 0 || h <= 0 || w > MaxPixels/h {
		return nil, fmt.Errorf("mask: %dx%d pixels is too large", w, h)
	}

	clip := rect.Rect{URx: float64(w), URy: float64(h)}
	r := NewRasteriser(clip)
	m := &Mask{
		World:      world,
		Resolution: resolution,
		Width:      w,
		Height:     h,
		Pix:        make([]float32, w*h),
		r:          r,
	}
	return m, nil
}

// FitResolution returns a resolution, no larger than res, at which a
// mask for world has at most maxPixels pixels.
func FitResolution(world rect.Rect, res float64, maxPixels int) float64 {
	w := world.URx - world.LLx
	h := world.URy - world.LLy
	limit := float64(maxPixels)
	for range 64 {
		n := math.Ceil(w*res) * math.Ceil(h*res)
		if n <= limit {
			break
		}
		res *= 0.99 * math.Sqrt(limit/n)
	}
	return res
}

// CTM returns the transformation from world coordinates to pixels.
func (m *Mask) CTM() matrix.Matrix {
	s := m.Resolution
	return matrix.Matrix{s, 0, 0, s, -m.World.LLx * s, -m.World.LLy * s}
}

func (m *Mask) prepare() {
	m.r.Reset(rect.Rect{URx: float64(m.Width), URy: float64(m.Height)})
	m.r.CTM = m.CTM()
}

// Fill adds the region enclosed by p (nonzero rule) to the mask.
// Where regions overlap, the larger coverage value is kept.
func (m *Mask) Fill(p *path.Data) {
	m.prepare()
	m.r.Fill(p, NonZero, func(y, xMin int, coverage []float32) {
		row := m.Pix[y*m.Width+xMin:]
		for i, c := range coverage {
			row[i] = max(row[i], c)
		}
	})
}

// At returns the coverage of pixel (x, y).  Pixels outside the mask have
// coverage 0.
func (m *Mask) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Area returns the world-space area covered by the mask.
func (m *Mask) Area() float64 {
	var sum float64
	for _, c := range m.Pix {
		sum += float64(c)
	}
	return sum / (m.Resolution * m.Resolution)
}

// Overlap rasterises p and returns the world-space area of p which lies
// inside the mask, together with the total area of p within the mask
// rectangle.
func (m *Mask) Overlap(p *path.Data) (inside, total float64) {
	m.prepare()
	m.r.Fill(p, NonZero, func(y, xMin int, coverage []float32) {
		row := m.Pix[y*m.Width+xMin:]
		for i, c := range coverage {
			inside += float64(c * row[i])
			total += float64(c)
		}
	})
	s2 := m.Resolution * m.Resolution
	return inside / s2, total / s2
}

// Fraction returns the part of p's area which lies inside the mask, as a
// number between 0 and 1.  Paths without area give 0.
func (m *Mask) Fraction(p *path.Data) float64 {
	inside, total := m.Overlap(p)
	if total <= 0 {
		return 0
	}
	return min(inside/total, 1)
}

// Gray converts the mask into an 8-bit image.  Image row y shows mask
// row y, which matches scenes given in screen coordinates (y pointing
// down).
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := range m.Height {
		src := m.Pix[y*m.Width : (y+1)*m.Width]
		dst := img.Pix[y*img.Stride:]
		for x, c := range src {
			dst[x] = byte(max(0, min(255, int(c*256))))
		}
	}
	return img
}
