package outliner

// PathBuilder provides a fluent, pen-style interface for path construction.
// All methods return the builder for chaining.
//
//	p := outliner.BuildPath().
//		MoveTo(0, 0).LineTo(0, 100).LineTo(100, 100).LineTo(100, 0).Close().
//		Path()
type PathBuilder struct {
	path    *Path
	current *Contour
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: &Path{}}
}

// MoveTo starts a new contour. An unfinished contour is kept open.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.flush(false)
	b.current = &Contour{Start: Pt(x, y)}
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.ensure()
	b.current.Segments = append(b.current.Segments, LineTo{Point: Pt(x, y)})
	return b
}

// QuadTo draws a quadratic Bezier curve, stored as its exact cubic.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.ensure()
	q := QuadBez{P0: b.current.End(), P1: Pt(cx, cy), P2: Pt(x, y)}.Raise()
	b.current.Segments = append(b.current.Segments, CubicTo{Control1: q.P1, Control2: q.P2, Point: q.P3})
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.ensure()
	b.current.Segments = append(b.current.Segments, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	return b
}

// Close closes the current contour.
func (b *PathBuilder) Close() *PathBuilder {
	b.flush(true)
	return b
}

// End finishes the current contour as open.
func (b *PathBuilder) End() *PathBuilder {
	b.flush(false)
	return b
}

// Component adds a reference to another glyph.
func (b *PathBuilder) Component(base string, m Matrix) *PathBuilder {
	b.path.AddComponent(base, m)
	return b
}

// Rect adds a closed rectangle, drawn clockwise from (x, y).
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	return b.MoveTo(x, y).LineTo(x, y+h).LineTo(x+w, y+h).LineTo(x+w, y).Close()
}

// Circle adds a closed counter-clockwise circle made of four cubics.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	k := 0.5522847498 * r
	return b.MoveTo(cx+r, cy).
		CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r).
		CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy).
		CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r).
		CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy).
		Close()
}

// Path finishes any open contour and returns the built path.
func (b *PathBuilder) Path() *Path {
	b.flush(false)
	return b.path
}

// ensure starts a contour at the origin when drawing begins without MoveTo.
func (b *PathBuilder) ensure() {
	if b.current == nil {
		b.current = &Contour{}
	}
}

func (b *PathBuilder) flush(closed bool) {
	if b.current == nil {
		return
	}
	b.current.Closed = closed
	b.path.AddContour(*b.current)
	b.current = nil
}
