package outliner

import "math"

// doublesEpsilon is the distance under which consecutive points coincide.
const doublesEpsilon = 1e-3

// filterDoubles drops segments that end within eps of the previous on-curve
// point without drawing anything, and an explicit closing line that only
// returns to Start.
func filterDoubles(c Contour, eps float64) Contour {
	out := Contour{Start: c.Start, Closed: c.Closed, Segments: make([]Segment, 0, len(c.Segments))}
	prev := c.Start
	for _, seg := range c.Segments {
		end := seg.End()
		if end.Near(prev, eps) {
			cub, isCubic := seg.(CubicTo)
			if !isCubic || (cub.Control1.Near(prev, eps) && cub.Control2.Near(prev, eps)) {
				continue
			}
		}
		out.Segments = append(out.Segments, seg)
		prev = end
	}
	if c.Closed && len(out.Segments) > 1 {
		last := len(out.Segments) - 1
		if l, ok := out.Segments[last].(LineTo); ok && l.Point.Near(out.Start, eps) {
			out.Segments = out.Segments[:last]
		}
	}
	return out
}

// collinear reports whether b lies on the straight run from a to c,
// travelling forwards.
func collinear(a, b, c Point) bool {
	ab, bc := b.Sub(a), c.Sub(b)
	la, lc := ab.Length(), bc.Length()
	if la == 0 || lc == 0 {
		return true
	}
	return math.Abs(ab.Cross(bc)) <= 1e-6*la*lc && ab.Dot(bc) > 0
}

// mergeCollinear joins consecutive line segments that continue in the same
// direction. On closed contours the start point is moved off a straight
// edge so the closing line can merge too.
func mergeCollinear(c Contour) Contour {
	segs := make([]Segment, 0, len(c.Segments))
	prev := c.Start
	for _, seg := range c.Segments {
		line, ok := seg.(LineTo)
		if ok && len(segs) > 0 {
			if last, lastOK := segs[len(segs)-1].(LineTo); lastOK && collinear(prev, last.Point, line.Point) {
				segs[len(segs)-1] = line
				continue
			}
		}
		if len(segs) > 0 {
			prev = segs[len(segs)-1].End()
		}
		segs = append(segs, seg)
	}
	out := Contour{Start: c.Start, Segments: segs, Closed: c.Closed}
	if !c.Closed {
		return out
	}

	// Make the closing line implicit so it takes part in merging.
	if n := len(out.Segments); n > 2 {
		if l, ok := out.Segments[n-1].(LineTo); ok && l.Point == out.Start {
			out.Segments = out.Segments[:n-1]
		}
	}
	for len(out.Segments) > 2 {
		n := len(out.Segments)
		first, firstOK := out.Segments[0].(LineTo)
		if !firstOK || !collinear(out.Segments[n-1].End(), out.Start, first.Point) {
			break
		}
		// Start sits on a straight edge: begin at the next corner.
		out.Start = first.Point
		out.Segments = out.Segments[1:]
	}
	for len(out.Segments) > 2 {
		n := len(out.Segments)
		last, lastOK := out.Segments[n-1].(LineTo)
		if !lastOK || !collinear(out.Segments[n-2].End(), last.Point, out.Start) {
			break
		}
		out.Segments = out.Segments[:n-1]
	}
	return out
}

// keepBounds scales result uniformly about its own bounding-box center so
// its height matches source. Either height being zero makes it a no-op.
func keepBounds(result *Path, source Rect) {
	bounds, ok := result.Bounds()
	if !ok || bounds.Height() == 0 || source.Height() == 0 {
		return
	}
	scale := source.Height() / bounds.Height()
	m := ScaleAbout(scale, bounds.Center())
	for i, c := range result.Contours {
		result.Contours[i] = c.Transform(m)
	}
}
