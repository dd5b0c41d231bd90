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
	"io"
	"log/slog"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/visibility"
	"seehuhn.de/go/visibility/mask"
)

// First IDs handed out to new obstacles and to cloned shapes.
const (
	FirstSegmentID = 10000
	FirstCloneID   = 50000
)

// DefaultMaskResolution is the number of mask pixels per scene unit used
// to estimate visible fractions.
const DefaultMaskResolution = 1.0

// DefaultMaskPixels is the default pixel budget of one mask.
const DefaultMaskPixels = 1 << 22

// Blast describes the effect of one bomb.
type Blast struct {
	Command  Command
	Origin   vec.Vec2
	Polygon  visibility.Polygon
	Affected []Shape

	// Visible holds, for each affected shape, the fraction of its area
	// which lies inside the polygon.  It is nil if fractions were not
	// computed.
	Visible []float64

	// Mask is the rasterised polygon, or nil.
	Mask *mask.Mask
}

// Processor applies commands to a scene.
//
// Obstacles created by Convert commands stay in place when the shapes
// they came from are destroyed or changed.
type Processor struct {
	Scene     *Scene
	Obstacles []visibility.Segment

	// Options are passed to [visibility.Compute].
	Options visibility.Options

	// Report, if not nil, receives a human-readable log of all commands.
	Report io.Writer

	// OnBlast, if not nil, is called after every bomb, before the scene
	// is changed.
	OnBlast func(*Blast) error

	// MaskResolution is the pixel density used to compute visible
	// fractions.  If it is zero, DefaultMaskResolution is used.  Negative
	// values disable the computation.
	MaskResolution float64

	// MaskPixels bounds the number of pixels of the mask.  If the affected
	// shapes cover too large an area, the resolution is lowered to fit.
	// Zero selects DefaultMaskPixels.
	MaskPixels int

	nextSegment int
	nextClone   int
	index       *Index
}

// NewProcessor returns a processor for sc with default settings.
func NewProcessor(sc *Scene) *Processor {
	return &Processor{
		Scene:       sc,
		nextSegment: FirstSegmentID,
		nextClone:   FirstCloneID,
	}
}

// Run applies all commands in order.
func (p *Processor) Run(cmds []Command) error {
	for i, cmd := range cmds {
		if err := p.Apply(cmd); err != nil {
			return fmt.Errorf("command %d: %w", i+1, err)
		}
	}
	return nil
}

// Apply executes a single command.
func (p *Processor) Apply(cmd Command) error {
	if p.nextSegment == 0 {
		p.nextSegment = FirstSegmentID
	}
	if p.nextClone == 0 {
		p.nextClone = FirstCloneID
	}

	switch cmd := cmd.(type) {
	case Convert:
		p.convert(cmd)
		return nil
	case Destroy:
		p.printf("COMMAND 'd': destruction bomb at (%.2f, %.2f)\n", cmd.At.X, cmd.At.Y)
		return p.blast(cmd, cmd.Bomb, p.destroy)
	case Paint:
		p.printf("COMMAND 'p': paint bomb at (%.2f, %.2f) color %s\n", cmd.At.X, cmd.At.Y, cmd.Color)
		return p.blast(cmd, cmd.Bomb, func(affected []Shape) {
			for _, s := range affected {
				s.Paint(cmd.Color)
				p.printf("shape %d type '%c' PAINTED\n", s.ShapeID(), s.Kind())
			}
		})
	case Clone:
		p.printf("COMMAND 'cln': clone bomb at (%.2f, %.2f)\n", cmd.At.X, cmd.At.Y)
		p.printf("offset: dx=%.2f, dy=%.2f\n", cmd.Offset.X, cmd.Offset.Y)
		return p.blast(cmd, cmd.Bomb, func(affected []Shape) {
			for _, s := range affected {
				c := s.Clone(p.nextClone, cmd.Offset)
				p.nextClone++
				p.Scene.Shapes = append(p.Scene.Shapes, c)
				p.idx().Insert(c)
				p.printf("shape %d type '%c' -> clone %d\n", s.ShapeID(), s.Kind(), c.ShapeID())
			}
		})
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
}

func (p *Processor) convert(cmd Convert) {
	p.printf("COMMAND 'a': converting shapes [%d, %d] into obstacles\n", cmd.First, cmd.Last)
	next := func() int {
		id := p.nextSegment
		p.nextSegment++
		return id
	}
	n := 0
	for _, s := range p.Scene.Shapes {
		id := s.ShapeID()
		if id < cmd.First || id > cmd.Last {
			continue
		}
		segs := s.Obstacles(cmd.Orient, next)
		p.printf("shape %d type '%c':", id, s.Kind())
		for _, seg := range segs {
			p.printf(" segment %d (%.2f,%.2f) - (%.2f,%.2f)",
				seg.ID, seg.A.X, seg.A.Y, seg.B.X, seg.B.Y)
		}
		p.printf("\n")
		p.Obstacles = append(p.Obstacles, segs...)
		n += len(segs)
	}
	visibility.Logger().Info("shapes converted",
		slog.Int("first", cmd.First),
		slog.Int("last", cmd.Last),
		slog.Int("segments", n))
}

func (p *Processor) destroy(affected []Shape) {
	gone := make(map[Shape]bool, len(affected))
	for _, s := range affected {
		gone[s] = true
		p.idx().Delete(s)
		p.printf("shape %d type '%c' DESTROYED\n", s.ShapeID(), s.Kind())
	}
	p.Scene.Shapes = slices.DeleteFunc(p.Scene.Shapes, func(s Shape) bool {
		return gone[s]
	})
}

// blast computes the visibility polygon of a bomb, selects the affected
// shapes and passes them to act.
func (p *Processor) blast(cmd Command, b Bomb, act func([]Shape)) error {
	poly, err := visibility.Compute(b.At, p.Obstacles, &p.Options)
	if err != nil {
		return err
	}
	res := &Blast{
		Command:  cmd,
		Origin:   b.At,
		Polygon:  poly,
		Affected: p.Select(poly),
	}
	p.measure(res)
	for i, s := range res.Affected {
		if res.Visible != nil {
			p.printf("shape %d type '%c' area %.2f visible %.1f%%\n",
				s.ShapeID(), s.Kind(), s.Area(), 100*res.Visible[i])
		}
	}
	visibility.Logger().Info("bomb",
		slog.String("command", commandName(cmd)),
		slog.String("suffix", b.Suffix),
		slog.Float64("x", b.At.X),
		slog.Float64("y", b.At.Y),
		slog.Int("vertices", len(poly)),
		slog.Int("affected", len(res.Affected)))

	if p.OnBlast != nil {
		if err := p.OnBlast(res); err != nil {
			return err
		}
	}
	act(res.Affected)
	return nil
}

// Select returns the shapes chosen by a bomb with visibility polygon poly,
// in scene order.
func (p *Processor) Select(poly visibility.Polygon) []Shape {
	if len(poly) < 3 {
		return nil
	}
	candidates := p.idx().Search(poly.Bounds())
	var res []Shape
	for _, s := range p.Scene.Shapes {
		if candidates[s] && s.Inside(poly) {
			res = append(res, s)
		}
	}
	return res
}

// measure rasterises the polygon of b and estimates which fraction of each
// affected shape is visible.  If no mask can be allocated, b.Visible is
// left nil.
func (p *Processor) measure(b *Blast) {
	res := p.MaskResolution
	if res < 0 || len(b.Affected) == 0 {
		return
	}
	if res == 0 {
		res = DefaultMaskResolution
	}

	// Restrict the mask to where the affected shapes are.
	var world rect.Rect
	for i, s := range b.Affected {
		if i == 0 {
			world = s.Bounds()
		} else {
			world = union(world, s.Bounds())
		}
	}
	world.LLx -= 1
	world.LLy -= 1
	world.URx += 1
	world.URy += 1

	limit := p.MaskPixels
	if limit <= 0 {
		limit = DefaultMaskPixels
	}
	limit = min(limit, mask.MaxPixels)
	if fit := mask.FitResolution(world, res, limit); fit < res {
		visibility.Logger().Debug("mask resolution reduced",
			slog.Float64("requested", res),
			slog.Float64("used", fit))
		res = fit
	}

	m, err := mask.New(world, res)
	if err != nil {
		visibility.Logger().Debug("visible fractions skipped",
			slog.String("error", err.Error()))
		return
	}
	m.Fill(b.Polygon.Path())
	b.Mask = m
	b.Visible = make([]float64, len(b.Affected))
	for i, s := range b.Affected {
		b.Visible[i] = m.Fraction(s.Outline())
	}
}

func (p *Processor) idx() *Index {
	if p.index == nil {
		p.index = NewIndex(p.Scene.Shapes)
	}
	return p.index
}

func (p *Processor) printf(format string, args ...any) {
	if p.Report != nil {
		fmt.Fprintf(p.Report, format, args...)
	}
}

func union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case Convert:
		return "a"
	case Destroy:
		return "d"
	case Paint:
		return "p"
	case Clone:
		return "cln"
	default:
		return "?"
	}
}
