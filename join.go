package outliner

import "math"

// smoothCross is the largest |sin| between unit tangents treated as parallel.
const smoothCross = 1e-9

// joiner connects consecutive offset runs and caps open ends.
type joiner struct {
	join           JoinStyle
	cap            CapStyle
	thickness      float64
	miterLimit     float64
	closeOpenPaths bool
	// side matches the offsetter that produced the runs.
	side float64
}

func newJoiner(opts Options, side float64) joiner {
	return joiner{
		join:           opts.Join,
		cap:            opts.Cap,
		thickness:      opts.Thickness,
		miterLimit:     opts.MiterLimit,
		closeOpenPaths: opts.CloseOpenPaths,
		side:           side,
	}
}

// contour stitches runs into one contour. Closed contours also join the
// last run back to the first.
func (j joiner) contour(runs []*run, closed bool) Contour {
	n := len(runs)
	joins := n - 1
	if closed {
		joins = n
	}
	conns := make([][]Segment, n)
	for i := range joins {
		conns[i] = j.connect(runs[i], runs[(i+1)%n])
	}

	out := Contour{Start: runs[0].start, Closed: closed}
	for i, r := range runs {
		out.Segments = append(out.Segments, r.segs...)
		out.Segments = append(out.Segments, conns[i]...)
	}
	return out
}

// connect returns the segments leading from the end of a to the start of b
// around their shared source vertex. Inside corners may trim both runs.
func (j joiner) connect(a, b *run) []Segment {
	v := a.vertex
	tA, tB := a.tanOut, b.tanIn
	cross := tA.Cross(tB)
	dot := tA.Dot(tB)

	if math.Abs(cross) <= smoothCross {
		if dot > 0 {
			// Smooth vertex: the offsets meet, possibly with zero length.
			return []Segment{LineTo{Point: b.start}}
		}
		// Cusp: the stroke turns back on itself, always an outside join.
		return j.outside(a, b, v, true)
	}

	if j.side*cross > 0 {
		if trimInside(a, b) {
			if a.end() == b.start {
				return nil
			}
			return []Segment{LineTo{Point: b.start}}
		}
		// Trim point outside the pieces: fall back to a chord.
		return []Segment{LineTo{Point: b.start}}
	}
	return j.outside(a, b, v, false)
}

// outside builds the configured join on the outer side of a turn.
func (j joiner) outside(a, b *run, v Point, cusp bool) []Segment {
	pa, pb := a.end(), b.start
	switch j.join {
	case JoinMiter:
		if m, ok := j.miterPoint(pa, a.tanOut, pb, b.tanIn, v, cusp); ok {
			return []Segment{LineTo{Point: m}, LineTo{Point: pb}}
		}
	case JoinRound:
		from := pa.Sub(v)
		to := pb.Sub(v)
		if from.LengthSquared() > zeroLengthSq && to.LengthSquared() > zeroLengthSq {
			var sweep float64
			if cusp {
				// Sweep through the incoming direction, around the end.
				sweep = sign(from.Cross(a.tanOut)) * math.Pi
			} else {
				sweep = math.Atan2(from.Cross(to), from.Dot(to))
			}
			return arc(v, pa, pb, sweep)
		}
	}
	return []Segment{LineTo{Point: pb}}
}

// miterPoint intersects the tangent lines leaving pa and arriving at pb.
// ok is false for parallel tangents or when the miter tip lies further
// than thickness*miterLimit from the source vertex.
func (j joiner) miterPoint(pa, tA, pb, tB, v Point, cusp bool) (Point, bool) {
	if cusp {
		return Point{}, false
	}
	u, w, ok := intersectRays(pa, tA, pb, tB)
	if !ok || u < 0 || w > 0 {
		return Point{}, false
	}
	m := pa.Add(tA.Mul(u))
	if m.Distance(v) > j.thickness*j.miterLimit {
		return Point{}, false
	}
	return m, true
}

// trimInside shortens the end of a and the start of b to the intersection
// of their tangent lines. It reports false, leaving both runs untouched,
// when the intersection does not fall within both end segments.
func trimInside(a, b *run) bool {
	// A single-segment loop would be cut from both ends at once.
	if a == b && len(a.segs) == 1 {
		return false
	}
	pa, pb := a.end(), b.start
	u, w, ok := intersectRays(pa, a.tanOut, pb, b.tanIn)
	if !ok || u > 0 || w < 0 {
		return false
	}
	x := pa.Add(a.tanOut.Mul(u))

	last := len(a.segs) - 1
	newEnd, ok := trimEnd(a.lastFrom(), a.segs[last], x, -u)
	if !ok {
		return false
	}
	newStart, newFirst, ok := trimStart(b.start, b.segs[0], x, w)
	if !ok {
		return false
	}
	a.segs[last] = newEnd
	b.start = newStart
	b.segs[0] = newFirst
	return true
}

// trimEnd removes length l from the end of seg, which starts at from.
// Lines end exactly at x; curves are cut by arc length.
func trimEnd(from Point, seg Segment, x Point, l float64) (Segment, bool) {
	switch s := seg.(type) {
	case LineTo:
		if l >= from.Distance(s.Point) {
			return nil, false
		}
		return LineTo{Point: x}, true
	case CubicTo:
		c := CubicBez{P0: from, P1: s.Control1, P2: s.Control2, P3: s.Point}
		t, ok := paramAtLength(c.Reversed(), l)
		if !ok {
			return nil, false
		}
		head, _ := c.Split(1 - t)
		return CubicTo{Control1: head.P1, Control2: head.P2, Point: head.P3}, true
	}
	return nil, false
}

// trimStart removes length l from the start of seg, which starts at from.
func trimStart(from Point, seg Segment, x Point, l float64) (Point, Segment, bool) {
	switch s := seg.(type) {
	case LineTo:
		if l >= from.Distance(s.Point) {
			return Point{}, nil, false
		}
		return x, s, true
	case CubicTo:
		c := CubicBez{P0: from, P1: s.Control1, P2: s.Control2, P3: s.Point}
		t, ok := paramAtLength(c, l)
		if !ok {
			return Point{}, nil, false
		}
		_, tail := c.Split(t)
		return tail.P0, CubicTo{Control1: tail.P1, Control2: tail.P2, Point: tail.P3}, true
	}
	return Point{}, nil, false
}

// paramAtLength returns t such that the arc length of c over [0, t] is l.
// ok is false when l is not shorter than the whole curve.
func paramAtLength(c CubicBez, l float64) (float64, bool) {
	const accuracy = 1e-3
	if l <= 0 {
		return 0, true
	}
	if l >= c.ArcLength(accuracy) {
		return 0, false
	}
	lo, hi := 0.0, 1.0
	for range 32 {
		mid := (lo + hi) / 2
		head, _ := c.Split(mid)
		if head.ArcLength(accuracy) < l {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}

// capEnd closes the free end of an open stroke from the end of one side to the
// start of the other. dir points away from the stroke along its axis.
func (j joiner) capEnd(from, to, v, dir Point) []Segment {
	style := CapButt
	if j.closeOpenPaths {
		style = j.cap
	}
	switch style {
	case CapSquare:
		ext := dir.Mul(j.thickness)
		return []Segment{
			LineTo{Point: from.Add(ext)},
			LineTo{Point: to.Add(ext)},
			LineTo{Point: to},
		}
	case CapRound:
		rel := from.Sub(v)
		if rel.LengthSquared() > zeroLengthSq {
			return arc(v, from, to, sign(rel.Cross(dir))*math.Pi)
		}
	}
	return []Segment{LineTo{Point: to}}
}

// arc approximates a circular arc around center from one point to another
// with cubics of at most 90 degrees. The radius is interpolated when the
// end points are at different distances from the center.
func arc(center, from, to Point, sweep float64) []Segment {
	n := max(int(math.Ceil(math.Abs(sweep)/(math.Pi/2)-1e-9)), 1)
	r0 := from.Distance(center)
	r1 := to.Distance(center)
	a0 := from.Sub(center).Angle()
	step := sweep / float64(n)

	// Handle length of a unit arc of the given angle.
	alpha := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3

	segs := make([]Segment, 0, n)
	for i := range n {
		t0 := float64(i) / float64(n)
		t1 := float64(i+1) / float64(n)
		ra := r0 + (r1-r0)*t0
		rb := r0 + (r1-r0)*t1
		aa := a0 + step*float64(i)
		ab := aa + step

		p0 := polar(center, ra, aa)
		p1 := polar(center, rb, ab)
		if i == n-1 {
			p1 = to
		}
		sa, ca := math.Sincos(aa)
		sb, cb := math.Sincos(ab)
		c1 := Point{X: p0.X - alpha*ra*sa, Y: p0.Y + alpha*ra*ca}
		c2 := Point{X: p1.X + alpha*rb*sb, Y: p1.Y - alpha*rb*cb}
		segs = append(segs, CubicTo{Control1: c1, Control2: c2, Point: p1})
	}
	return segs
}
