package outliner

// Segment is one drawing step of a contour. It starts where the previous
// segment (or the contour start) ended.
// Implemented by LineTo and CubicTo.
type Segment interface {
	// End returns the on-curve point the segment finishes at.
	End() Point
	transform(m Matrix) Segment
	isSegment()
}

// LineTo draws a straight line.
type LineTo struct{ Point Point }

// End returns the line's end point.
func (s LineTo) End() Point { return s.Point }

func (s LineTo) transform(m Matrix) Segment { return LineTo{Point: m.TransformPoint(s.Point)} }

func (LineTo) isSegment() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

// End returns the curve's end point.
func (s CubicTo) End() Point { return s.Point }

func (s CubicTo) transform(m Matrix) Segment {
	return CubicTo{
		Control1: m.TransformPoint(s.Control1),
		Control2: m.TransformPoint(s.Control2),
		Point:    m.TransformPoint(s.Point),
	}
}

func (CubicTo) isSegment() {}

// Contour is an ordered run of segments from Start.
// A closed contour whose last segment does not return to Start has an
// implicit closing line.
type Contour struct {
	Start    Point
	Segments []Segment
	Closed   bool
}

// Len returns the number of explicit segments.
func (c Contour) Len() int {
	return len(c.Segments)
}

// End returns the last on-curve point.
func (c Contour) End() Point {
	if len(c.Segments) == 0 {
		return c.Start
	}
	return c.Segments[len(c.Segments)-1].End()
}

// Clone returns a deep copy.
func (c Contour) Clone() Contour {
	segs := make([]Segment, len(c.Segments))
	copy(segs, c.Segments)
	return Contour{Start: c.Start, Segments: segs, Closed: c.Closed}
}

// Points returns the on-curve points, starting with Start.
func (c Contour) Points() []Point {
	pts := make([]Point, 0, len(c.Segments)+1)
	pts = append(pts, c.Start)
	for _, s := range c.Segments {
		pts = append(pts, s.End())
	}
	return pts
}

// Transform returns the contour with m applied to every point.
func (c Contour) Transform(m Matrix) Contour {
	segs := make([]Segment, len(c.Segments))
	for i, s := range c.Segments {
		segs[i] = s.transform(m)
	}
	return Contour{Start: m.TransformPoint(c.Start), Segments: segs, Closed: c.Closed}
}

// SignedArea returns the enclosed area, positive for counter-clockwise
// winding in y-up glyph space. Open contours are measured as if closed.
func (c Contour) SignedArea() float64 {
	var area float64
	for _, p := range c.pieces(true) {
		if p.line {
			area += Line{P0: p.P0, P1: p.P3}.SignedArea()
		} else {
			area += p.SignedArea()
		}
	}
	return area
}

// Bounds returns the tight bounding box of the contour.
func (c Contour) Bounds() Rect {
	r := Rect{Min: c.Start, Max: c.Start}
	for _, p := range c.pieces(false) {
		if p.line {
			r = r.Include(p.P3)
		} else {
			r = r.Union(p.BoundingBox())
		}
	}
	return r
}

// Reversed returns the contour traversed in the opposite direction.
// Closed contours keep their start point.
func (c Contour) Reversed() Contour {
	pieces := c.pieces(c.Closed)
	out := Contour{Closed: c.Closed, Segments: make([]Segment, 0, len(pieces))}
	if len(pieces) == 0 {
		out.Start = c.Start
		return out
	}
	out.Start = pieces[len(pieces)-1].P3
	for i := len(pieces) - 1; i >= 0; i-- {
		p := pieces[i]
		if p.line {
			out.Segments = append(out.Segments, LineTo{Point: p.P0})
		} else {
			out.Segments = append(out.Segments, CubicTo{Control1: p.P2, Control2: p.P1, Point: p.P0})
		}
	}
	return out
}

// piece is a segment resolved against its start point.
// Lines keep their end points in P0 and P3.
type piece struct {
	CubicBez
	line bool
}

func (p piece) length() float64 {
	if p.line {
		return p.P0.Distance(p.P3)
	}
	return p.ArcLength(1e-3)
}

// pieces resolves segments into absolute pieces. When closing is true and
// the contour does not end at Start, the implicit closing line is added.
func (c Contour) pieces(closing bool) []piece {
	out := make([]piece, 0, len(c.Segments)+1)
	cur := c.Start
	for _, s := range c.Segments {
		switch s := s.(type) {
		case LineTo:
			out = append(out, piece{CubicBez: CubicBez{P0: cur, P1: cur, P2: s.Point, P3: s.Point}, line: true})
		case CubicTo:
			out = append(out, piece{CubicBez: CubicBez{P0: cur, P1: s.Control1, P2: s.Control2, P3: s.Point}})
		}
		cur = s.End()
	}
	if closing && len(c.Segments) > 0 && cur != c.Start {
		out = append(out, piece{CubicBez: CubicBez{P0: cur, P1: cur, P2: c.Start, P3: c.Start}, line: true})
	}
	return out
}

// Component is a transformed reference to another glyph's outline.
type Component struct {
	BaseGlyph string
	Transform Matrix
}

// Path is a glyph outline: contours plus component references.
type Path struct {
	Contours   []Contour
	Components []Component
}

// AddContour appends a contour. Contours without segments are ignored.
func (p *Path) AddContour(c Contour) {
	if len(c.Segments) == 0 {
		return
	}
	p.Contours = append(p.Contours, c)
}

// AddComponent appends a component reference.
func (p *Path) AddComponent(base string, m Matrix) {
	p.Components = append(p.Components, Component{BaseGlyph: base, Transform: m})
}

// Bounds returns the bounding box of the contours.
// ok is false when the path has no drawable contours.
func (p *Path) Bounds() (r Rect, ok bool) {
	for _, c := range p.Contours {
		if len(c.Segments) == 0 {
			continue
		}
		b := c.Bounds()
		if !ok {
			r, ok = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, ok
}

// PointCount returns the number of on-curve and off-curve points.
func (p *Path) PointCount() int {
	n := 0
	for _, c := range p.Contours {
		n++
		for _, s := range c.Segments {
			if _, ok := s.(CubicTo); ok {
				n += 3
			} else {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	out := &Path{
		Contours:   make([]Contour, len(p.Contours)),
		Components: make([]Component, len(p.Components)),
	}
	for i, c := range p.Contours {
		out.Contours[i] = c.Clone()
	}
	copy(out.Components, p.Components)
	return out
}

// Transform returns a copy with m applied to every contour point.
// Component transforms are composed with m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		Contours:   make([]Contour, len(p.Contours)),
		Components: make([]Component, len(p.Components)),
	}
	for i, c := range p.Contours {
		out.Contours[i] = c.Transform(m)
	}
	for i, c := range p.Components {
		out.Components[i] = Component{BaseGlyph: c.BaseGlyph, Transform: m.Multiply(c.Transform)}
	}
	return out
}
