package outliner

import "math"

// Curve offset tolerances in font units.
const (
	// subdivideTolerance bounds the deviation of each re-fit piece.
	subdivideTolerance = 0.1
	// fitTolerance is the looser bound used when fewer curves are preferred.
	fitTolerance = 1.0
	// maxOffsetDepth limits recursive splitting of one source curve.
	maxOffsetDepth = 8
	// fitSamples is the number of interior samples used for least squares.
	fitSamples = 12
)

// run is the offset of one source piece on one side of a contour.
// Joins may trim its first and last segments.
type run struct {
	start Point
	segs  []Segment

	// vertex is the source end point the following join is centred on.
	vertex Point
	// tanIn and tanOut are the unit source tangents at the piece ends.
	tanIn, tanOut Point
	// distIn and distOut are the pen distances at the piece ends.
	distIn, distOut float64
}

func (r *run) end() Point {
	return r.segs[len(r.segs)-1].End()
}

// lastFrom returns the start point of the last segment.
func (r *run) lastFrom() Point {
	if len(r.segs) < 2 {
		return r.start
	}
	return r.segs[len(r.segs)-2].End()
}

// offsetter displaces contour pieces along one side.
type offsetter struct {
	pen Pen
	// side multiplies the left-hand normal: +1 offsets to the left of the
	// direction of travel, -1 to the right.
	side     float64
	optimize bool
}

// runs offsets every non-degenerate piece of c. Closed contours include
// their implicit closing line.
func (o *offsetter) runs(c Contour) []*run {
	pieces := c.pieces(c.Closed)
	out := make([]*run, 0, len(pieces))
	prevTan := Point{}
	for _, p := range pieces {
		if isDegenerate(p) {
			continue
		}
		r := o.offsetPiece(p, prevTan)
		prevTan = r.tanOut
		out = append(out, r)
	}
	return out
}

func isDegenerate(p piece) bool {
	const eps = 1e-9
	if p.line {
		return p.P0.Near(p.P3, eps)
	}
	return p.P0.Near(p.P1, eps) && p.P0.Near(p.P2, eps) && p.P0.Near(p.P3, eps)
}

func (o *offsetter) offsetPiece(p piece, fallback Point) *run {
	if p.line {
		tan := p.P3.Sub(p.P0).Normalize()
		d := o.pen.Distance(tan)
		shift := tan.Perp().Mul(o.side * d)
		return &run{
			start:   p.P0.Add(shift),
			segs:    []Segment{LineTo{Point: p.P3.Add(shift)}},
			vertex:  p.P3,
			tanIn:   tan,
			tanOut:  tan,
			distIn:  d,
			distOut: d,
		}
	}

	tanIn := unitOr(p.StartTangent(), fallback)
	tanOut := unitOr(p.EndTangent(), tanIn)
	r := &run{
		vertex:  p.P3,
		tanIn:   tanIn,
		tanOut:  tanOut,
		distIn:  o.pen.Distance(tanIn),
		distOut: o.pen.Distance(tanOut),
	}
	r.start, _ = o.offsetAt(p.CubicBez, 0, tanIn)

	var curves []CubicBez
	if o.optimize {
		curves = o.fit(p.CubicBez, tanIn, 0, nil)
	} else {
		curves = o.subdivide(p.CubicBez, tanIn, 0, nil)
	}
	cur := r.start
	for _, c := range curves {
		// A cusp at a split point can leave the halves apart.
		if !c.P0.Near(cur, 1e-9) {
			r.segs = append(r.segs, LineTo{Point: c.P0})
		}
		r.segs = append(r.segs, CubicTo{Control1: c.P1, Control2: c.P2, Point: c.P3})
		cur = c.P3
	}
	return r
}

// offsetAt returns the true offset point at t together with the unit
// tangent used. Where the derivative vanishes the fallback tangent is used.
func (o *offsetter) offsetAt(c CubicBez, t float64, fallback Point) (Point, Point) {
	tan, ok := c.TangentAt(t)
	u := fallback
	if ok {
		u = tan.Normalize()
	}
	d := o.pen.Distance(u)
	return c.Eval(t).Add(u.Perp().Mul(o.side * d)), u
}

// handleScale is the ratio between offset and source speed at an end point:
// 1 - d*k for signed offset d along the left normal and signed curvature k.
func (o *offsetter) handleScale(c CubicBez, t float64, u Point) float64 {
	return 1 - o.side*o.pen.Distance(u)*c.Curvature(t)
}

// subdivide approximates the offset of c by tangent-preserving cubics,
// splitting at the midpoint until each piece is within tolerance.
func (o *offsetter) subdivide(c CubicBez, fallback Point, depth int, out []CubicBez) []CubicBez {
	q0, u0 := o.offsetAt(c, 0, fallback)
	q3, u1 := o.offsetAt(c, 1, u0)

	approx := CubicBez{
		P0: q0,
		P1: q0.Add(c.P1.Sub(c.P0).Mul(o.handleScale(c, 0, u0))),
		P2: q3.Sub(c.P3.Sub(c.P2).Mul(o.handleScale(c, 1, u1))),
		P3: q3,
	}

	if depth < maxOffsetDepth {
		worst := 0.0
		for _, t := range [...]float64{0.25, 0.5, 0.75} {
			want, _ := o.offsetAt(c, t, u0)
			worst = math.Max(worst, approx.Eval(t).Distance(want))
		}
		if worst > subdivideTolerance || !finiteCubic(approx) {
			left, right := c.Split(0.5)
			out = o.subdivide(left, fallback, depth+1, out)
			return o.subdivide(right, unitOr(left.EndTangent(), u0), depth+1, out)
		}
	}
	if !finiteCubic(approx) {
		approx = CubicBez{P0: q0, P1: q0, P2: q3, P3: q3}
	}
	return append(out, approx)
}

// fit approximates the offset of c by least-squares cubics with fixed end
// points and end directions, splitting at the worst sample when the fit
// misses the looser tolerance.
func (o *offsetter) fit(c CubicBez, fallback Point, depth int, out []CubicBez) []CubicBez {
	q0, u0 := o.offsetAt(c, 0, fallback)
	q3, u1 := o.offsetAt(c, 1, u0)

	// The offset runs backwards where the pen is wider than the curve radius.
	dir0 := u0.Mul(sign(o.handleScale(c, 0, u0)))
	dir1 := u1.Mul(-sign(o.handleScale(c, 1, u1)))

	var (
		ts      [fitSamples]float64
		samples [fitSamples]Point
		params  [fitSamples]float64
	)
	prev, total := q0, 0.0
	for i := range fitSamples {
		ts[i] = float64(i+1) / float64(fitSamples+1)
		samples[i], _ = o.offsetAt(c, ts[i], u0)
		total += samples[i].Distance(prev)
		params[i] = total
		prev = samples[i]
	}
	total += q3.Distance(prev)

	// Chord-length parameterization, then Schneider's normal equations for
	// the two handle lengths.
	var c00, c01, c11, x0, x1 float64
	for i := range fitSamples {
		u := 0.5
		if total > 0 {
			u = params[i] / total
		}
		params[i] = u
		mu := 1 - u
		b0, b1, b2, b3 := mu*mu*mu, 3*mu*mu*u, 3*mu*u*u, u*u*u
		a1 := dir0.Mul(b1)
		a2 := dir1.Mul(b2)
		c00 += a1.Dot(a1)
		c01 += a1.Dot(a2)
		c11 += a2.Dot(a2)
		rest := samples[i].Sub(q0.Mul(b0 + b1)).Sub(q3.Mul(b2 + b3))
		x0 += a1.Dot(rest)
		x1 += a2.Dot(rest)
	}
	chord := q0.Distance(q3)
	alpha, beta, ok := solve2x2(c00, c01, c01, c11, x0, x1)
	if eps := 1e-6 * chord; !ok || alpha < eps || beta < eps {
		alpha, beta = chord/3, chord/3
	}
	approx := CubicBez{P0: q0, P1: q0.Add(dir0.Mul(alpha)), P2: q3.Add(dir1.Mul(beta)), P3: q3}

	if depth < maxOffsetDepth {
		worst, worstT := 0.0, 0.5
		for i := range fitSamples {
			if e := approx.Eval(params[i]).Distance(samples[i]); e > worst {
				worst, worstT = e, ts[i]
			}
		}
		if worst > fitTolerance {
			split := math.Min(math.Max(worstT, 0.2), 0.8)
			left, right := c.Split(split)
			out = o.fit(left, fallback, depth+1, out)
			return o.fit(right, unitOr(left.EndTangent(), u0), depth+1, out)
		}
	}
	return append(out, approx)
}

// unitOr normalizes v, or returns fallback when v has no direction.
func unitOr(v, fallback Point) Point {
	if v.LengthSquared() <= zeroLengthSq {
		return fallback
	}
	return v.Normalize()
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func finiteCubic(c CubicBez) bool {
	for _, p := range [...]Point{c.P0, c.P1, c.P2, c.P3} {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return false
		}
	}
	return true
}
