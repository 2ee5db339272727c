// Package glyphset is the outliner's host-side font document: a named set
// of glyphs stored as point lists, readable and writable as YAML, JSON,
// TOML or CBOR.
//
// Contours follow the UFO point convention. A contour whose first point
// has type "move" is open. In a closed contour each on-curve point's type
// describes the segment ending there, so off-curve points at the end of
// the list belong to the segment that returns to the first point.
package glyphset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/outliner"
)

// Point types.
const (
	PointMove     = "move"
	PointLine     = "line"
	PointCurve    = "curve"
	PointQCurve   = "qcurve"
	PointOffCurve = "offcurve"
)

// ErrMalformedContour reports a point sequence that does not describe
// lines and curves.
var ErrMalformedContour = errors.New("glyphset: malformed contour")

// Font is a glyph set document. Struct tags double as CBOR keys.
type Font struct {
	Name       string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	UnitsPerEm int            `json:"unitsPerEm,omitempty" yaml:"unitsPerEm,omitempty" toml:"unitsPerEm,omitempty"`
	Glyphs     []Glyph        `json:"glyphs,omitempty" yaml:"glyphs,omitempty" toml:"glyphs,omitempty"`
	Layers     []Layer        `json:"layers,omitempty" yaml:"layers,omitempty" toml:"layers,omitempty"`
	Lib        map[string]any `json:"lib,omitempty" yaml:"lib,omitempty" toml:"lib,omitempty"`
}

// Layer is an alternate set of glyph drawings.
type Layer struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Glyphs []Glyph `json:"glyphs,omitempty" yaml:"glyphs,omitempty" toml:"glyphs,omitempty"`
}

type Glyph struct {
	Name       string      `json:"name" yaml:"name" toml:"name"`
	Unicodes   []int       `json:"unicodes,omitempty" yaml:"unicodes,omitempty" toml:"unicodes,omitempty"`
	Advance    float64     `json:"advance,omitempty" yaml:"advance,omitempty" toml:"advance,omitempty"`
	Note       string      `json:"note,omitempty" yaml:"note,omitempty" toml:"note,omitempty"`
	Contours   []Contour   `json:"contours,omitempty" yaml:"contours,omitempty" toml:"contours,omitempty"`
	Components []Component `json:"components,omitempty" yaml:"components,omitempty" toml:"components,omitempty"`
}

type Contour struct {
	Points []Point `json:"points" yaml:"points" toml:"points"`
}

type Point struct {
	X    float64 `json:"x" yaml:"x" toml:"x"`
	Y    float64 `json:"y" yaml:"y" toml:"y"`
	Type string  `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
}

// Component references another glyph. Transform is (xx, xy, yx, yy, dx, dy);
// empty means identity.
type Component struct {
	Base      string    `json:"base" yaml:"base" toml:"base"`
	Transform []float64 `json:"transform,omitempty" yaml:"transform,omitempty" toml:"transform,omitempty"`
}

func (p Point) onCurve() bool {
	return p.Type != "" && p.Type != PointOffCurve
}

// Glyph returns the named glyph of the default layer, or nil.
func (f *Font) Glyph(name string) *Glyph {
	for i := range f.Glyphs {
		if f.Glyphs[i].Name == name {
			return &f.Glyphs[i]
		}
	}
	return nil
}

// GlyphNames returns the default layer's glyph names in document order.
func (f *Font) GlyphNames() []string {
	names := make([]string, len(f.Glyphs))
	for i, g := range f.Glyphs {
		names[i] = g.Name
	}
	return names
}

// Layer returns the named layer, creating it when create is set.
func (f *Font) Layer(name string, create bool) *Layer {
	for i := range f.Layers {
		if f.Layers[i].Name == name {
			return &f.Layers[i]
		}
	}
	if !create {
		return nil
	}
	f.Layers = append(f.Layers, Layer{Name: name})
	return &f.Layers[len(f.Layers)-1]
}

// Glyph returns the named glyph of the layer, or nil.
func (l *Layer) Glyph(name string) *Glyph {
	for i := range l.Glyphs {
		if l.Glyphs[i].Name == name {
			return &l.Glyphs[i]
		}
	}
	return nil
}

// GlyphFor returns the layer's glyph matching src, adding an empty copy
// with the same name, unicodes and advance if the layer lacks it.
func (l *Layer) GlyphFor(src *Glyph) *Glyph {
	if g := l.Glyph(src.Name); g != nil {
		return g
	}
	l.Glyphs = append(l.Glyphs, Glyph{
		Name:     src.Name,
		Unicodes: slices.Clone(src.Unicodes),
		Advance:  src.Advance,
	})
	return &l.Glyphs[len(l.Glyphs)-1]
}

// Source converts the default layer into an engine glyph source.
func (f *Font) Source() (outliner.GlyphMap, error) {
	m := make(outliner.GlyphMap, len(f.Glyphs))
	for i := range f.Glyphs {
		p, err := f.Glyphs[i].ToPath()
		if err != nil {
			return nil, err
		}
		m[f.Glyphs[i].Name] = p
	}
	return m, nil
}

// ToPath converts the glyph into an engine path.
func (g *Glyph) ToPath() (*outliner.Path, error) {
	p := &outliner.Path{}
	for i, c := range g.Contours {
		oc, err := c.toContour()
		if err != nil {
			return nil, fmt.Errorf("glyphset: glyph %q contour %d: %w", g.Name, i, err)
		}
		p.AddContour(oc)
	}
	for _, comp := range g.Components {
		m, err := comp.matrix()
		if err != nil {
			return nil, fmt.Errorf("glyphset: glyph %q component %q: %w", g.Name, comp.Base, err)
		}
		p.AddComponent(comp.Base, m)
	}
	return p, nil
}

// Commit replaces the glyph's drawing with result. Existing contours and
// components are cleared; with round set every coordinate is rounded to
// an integer.
func (g *Glyph) Commit(result *outliner.Path, round bool) {
	g.Contours = g.Contours[:0]
	g.Components = nil
	for _, c := range result.Contours {
		g.Contours = append(g.Contours, fromContour(c))
	}
	for _, comp := range result.Components {
		t := comp.Transform.Transform()
		g.Components = append(g.Components, Component{Base: comp.BaseGlyph, Transform: t[:]})
	}
	if round {
		g.Round()
	}
}

// Round rounds every point and component offset to integers.
func (g *Glyph) Round() {
	for i := range g.Contours {
		pts := g.Contours[i].Points
		for j := range pts {
			q := outliner.Pt(pts[j].X, pts[j].Y).Round()
			pts[j].X, pts[j].Y = q.X, q.Y
		}
	}
	for i := range g.Components {
		if t := g.Components[i].Transform; len(t) == 6 {
			q := outliner.Pt(t[4], t[5]).Round()
			t[4], t[5] = q.X, q.Y
		}
	}
}

func (c Component) matrix() (outliner.Matrix, error) {
	switch len(c.Transform) {
	case 0:
		return outliner.Identity(), nil
	case 6:
		t := c.Transform
		return outliner.FromTransform(t[0], t[1], t[2], t[3], t[4], t[5]), nil
	}
	return outliner.Matrix{}, fmt.Errorf("transform has %d values, want 6", len(c.Transform))
}

func (c Contour) toContour() (outliner.Contour, error) {
	pts := c.Points
	if len(pts) == 0 {
		return outliner.Contour{}, nil
	}

	var out outliner.Contour
	var seq []Point
	if pts[0].Type == PointMove {
		out.Start = outliner.Pt(pts[0].X, pts[0].Y)
		seq = pts[1:]
	} else {
		first := slices.IndexFunc(pts, Point.onCurve)
		if first < 0 {
			return out, fmt.Errorf("%w: no on-curve point", ErrMalformedContour)
		}
		out.Closed = true
		out.Start = outliner.Pt(pts[first].X, pts[first].Y)
		seq = make([]Point, 0, len(pts))
		seq = append(seq, pts[first+1:]...)
		seq = append(seq, pts[:first+1]...)
	}

	var offs []outliner.Point
	for _, p := range seq {
		pt := outliner.Pt(p.X, p.Y)
		if !p.onCurve() {
			offs = append(offs, pt)
			continue
		}
		from := out.End()
		switch p.Type {
		case PointLine:
			if len(offs) != 0 {
				return out, fmt.Errorf("%w: line preceded by off-curve points", ErrMalformedContour)
			}
			out.Segments = append(out.Segments, outliner.LineTo{Point: pt})
		case PointCurve:
			switch len(offs) {
			case 0:
				out.Segments = append(out.Segments, outliner.LineTo{Point: pt})
			case 1:
				out.Segments = append(out.Segments, quadTo(from, offs[0], pt))
			case 2:
				out.Segments = append(out.Segments, outliner.CubicTo{Control1: offs[0], Control2: offs[1], Point: pt})
			default:
				return out, fmt.Errorf("%w: curve with %d off-curve points", ErrMalformedContour, len(offs))
			}
		case PointQCurve:
			out.Segments = append(out.Segments, qcurve(from, offs, pt)...)
		default:
			return out, fmt.Errorf("%w: unexpected %q point", ErrMalformedContour, p.Type)
		}
		offs = offs[:0]
	}
	if len(offs) != 0 {
		return out, fmt.Errorf("%w: trailing off-curve points", ErrMalformedContour)
	}
	return out, nil
}

func quadTo(from, ctrl, to outliner.Point) outliner.Segment {
	c := outliner.QuadBez{P0: from, P1: ctrl, P2: to}.Raise()
	return outliner.CubicTo{Control1: c.P1, Control2: c.P2, Point: c.P3}
}

// qcurve expands a TrueType quadratic spline. Consecutive off-curve points
// imply an on-curve point midway between them.
func qcurve(from outliner.Point, offs []outliner.Point, to outliner.Point) []outliner.Segment {
	if len(offs) == 0 {
		return []outliner.Segment{outliner.LineTo{Point: to}}
	}
	segs := make([]outliner.Segment, 0, len(offs))
	cur := from
	for i, ctrl := range offs {
		end := to
		if i < len(offs)-1 {
			end = ctrl.Lerp(offs[i+1], 0.5)
		}
		segs = append(segs, quadTo(cur, ctrl, end))
		cur = end
	}
	return segs
}

func fromContour(c outliner.Contour) Contour {
	var pts []Point
	add := func(p outliner.Point, typ string) {
		pts = append(pts, Point{X: p.X, Y: p.Y, Type: typ})
	}
	emit := func(s outliner.Segment) {
		switch s := s.(type) {
		case outliner.LineTo:
			add(s.Point, PointLine)
		case outliner.CubicTo:
			add(s.Control1, "")
			add(s.Control2, "")
			add(s.Point, PointCurve)
		}
	}

	if !c.Closed {
		add(c.Start, PointMove)
		for _, s := range c.Segments {
			emit(s)
		}
		return Contour{Points: pts}
	}

	segs := c.Segments
	var closing outliner.Segment
	if n := len(segs); n > 0 && segs[n-1].End() == c.Start {
		closing = segs[n-1]
		segs = segs[:n-1]
	}
	firstType := PointLine
	if _, ok := closing.(outliner.CubicTo); ok {
		firstType = PointCurve
	}
	add(c.Start, firstType)
	for _, s := range segs {
		emit(s)
	}
	if cub, ok := closing.(outliner.CubicTo); ok {
		add(cub.Control1, "")
		add(cub.Control2, "")
	}
	return Contour{Points: pts}
}
