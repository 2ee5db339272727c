package outliner

import (
	"math"
	"sort"
)

// Curve types for glyph geometry.
// Based on kurbo patterns, adapted for Go idioms.

// Rect represents an axis-aligned rectangle in y-up glyph space.
// Min is the bottom-left corner, Max the top-right.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Include returns the rectangle grown to contain p.
func (r Rect) Include(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// BoundingBox returns the axis-aligned bounding box of the line.
func (l Line) BoundingBox() Rect {
	return NewRect(l.P0, l.P1)
}

// SignedArea returns the signed area swept between the line and the origin.
// Summed over a closed contour it gives the enclosed area.
func (l Line) SignedArea() float64 {
	return (l.P0.X*l.P1.Y - l.P1.X*l.P0.Y) * 0.5
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve, the native curve of
// TrueType outlines.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Raise elevates the quadratic to an exactly equivalent cubic.
func (q QuadBez) Raise() CubicBez {
	// C1 = P0 + 2/3 (P1 - P0), C2 = P2 + 2/3 (P1 - P2)
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	t2 := t * t

	// (1-t)^3 P0 + 3(1-t)^2 t P1 + 3(1-t) t^2 P2 + t^3 P3
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

// Split divides the curve at t using de Casteljau's algorithm.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Subsegment returns the portion of the curve from t0 to t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	scale := (t1 - t0) / 3.0
	return CubicBez{
		P0: p0,
		P1: p0.Add(c.Derivative(t0).Mul(scale)),
		P2: p3.Sub(c.Derivative(t1).Mul(scale)),
		P3: p3,
	}
}

// Reversed returns the same curve traversed from P3 to P0.
func (c CubicBez) Reversed() CubicBez {
	return CubicBez{P0: c.P3, P1: c.P2, P2: c.P1, P3: c.P0}
}

// Derivative returns B'(t).
func (c CubicBez) Derivative(t float64) Point {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	mt := 1.0 - t
	return d0.Mul(3 * mt * mt).Add(d1.Mul(6 * mt * t)).Add(d2.Mul(3 * t * t))
}

// SecondDerivative returns B''(t).
func (c CubicBez) SecondDerivative(t float64) Point {
	a := c.P2.Sub(c.P1.Mul(2)).Add(c.P0)
	b := c.P3.Sub(c.P2.Mul(2)).Add(c.P1)
	return a.Mul(6 * (1 - t)).Add(b.Mul(6 * t))
}

// Curvature returns the signed curvature at t, positive where the curve
// turns left. Returns 0 where the derivative vanishes.
func (c CubicBez) Curvature(t float64) float64 {
	d1 := c.Derivative(t)
	speed := d1.Length()
	if speed < 1e-9 {
		return 0
	}
	return d1.Cross(c.SecondDerivative(t)) / (speed * speed * speed)
}

// StartTangent returns the direction of the curve at P0.
// Retracted handles fall through to the next distinct control point.
func (c CubicBez) StartTangent() Point {
	for _, p := range [...]Point{c.P1, c.P2, c.P3} {
		if d := p.Sub(c.P0); d.LengthSquared() > zeroLengthSq {
			return d
		}
	}
	return Point{}
}

// EndTangent returns the direction of the curve at P3.
func (c CubicBez) EndTangent() Point {
	for _, p := range [...]Point{c.P2, c.P1, c.P0} {
		if d := c.P3.Sub(p); d.LengthSquared() > zeroLengthSq {
			return d
		}
	}
	return Point{}
}

// TangentAt returns the tangent direction at t.
// The boolean is false at a cusp where the derivative vanishes.
func (c CubicBez) TangentAt(t float64) (Point, bool) {
	var d Point
	switch {
	case t <= 0:
		d = c.StartTangent()
	case t >= 1:
		d = c.EndTangent()
	default:
		d = c.Derivative(t)
	}
	if d.LengthSquared() <= zeroLengthSq {
		return Point{}, false
	}
	return d, true
}

// Extrema returns parameter values where the derivative is zero in x or y.
func (c CubicBez) Extrema() []float64 {
	result := make([]float64, 0, 4)

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	result = append(result, SolveQuadraticInUnitInterval(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, SolveQuadraticInUnitInterval(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		bbox = bbox.Include(c.Eval(t))
	}
	return bbox
}

// ArcLength approximates the length of the curve to within accuracy.
// It uses the Gravesen bound: the true length lies between the chord and
// the control polygon, and their average converges quickly under subdivision.
func (c CubicBez) ArcLength(accuracy float64) float64 {
	return c.arcLength(accuracy, 0)
}

func (c CubicBez) arcLength(accuracy float64, depth int) float64 {
	chord := c.P0.Distance(c.P3)
	poly := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
	if poly-chord <= accuracy || depth >= 16 {
		return (2*chord + poly) / 3
	}
	left, right := c.Split(0.5)
	return left.arcLength(accuracy*0.5, depth+1) + right.arcLength(accuracy*0.5, depth+1)
}

// SignedArea returns the signed area between the curve and the origin.
// Summed over a closed contour it gives the enclosed area (Green's theorem).
func (c CubicBez) SignedArea() float64 {
	p0, p1, p2, p3 := c.P0, c.P1, c.P2, c.P3
	return (p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
		3*(p1.X*(-2*p0.Y+p2.Y+p3.Y)-p2.X*(p0.Y+p1.Y-2*p3.Y)) -
		p3.X*(p0.Y+3*p1.Y+6*p2.Y)) * (1.0 / 20.0)
}

// NearestDistance returns the approximate distance from p to the curve.
// It samples the curve and refines the best sample with a few Newton steps.
func (c CubicBez) NearestDistance(p Point) float64 {
	const samples = 32
	bestT, best := 0.0, math.Inf(1)
	for i := 0; i <= samples; i++ {
		t := float64(i) / samples
		if d := c.Eval(t).Distance(p); d < best {
			bestT, best = t, d
		}
	}
	t := bestT
	for range 6 {
		q := c.Eval(t).Sub(p)
		d1 := c.Derivative(t)
		d2 := c.SecondDerivative(t)
		den := d1.Dot(d1) + q.Dot(d2)
		if math.Abs(den) < 1e-12 {
			break
		}
		t = math.Max(0, math.Min(1, t-q.Dot(d1)/den))
	}
	return math.Min(best, c.Eval(t).Distance(p))
}

// zeroLengthSq is the squared length below which a vector is treated as zero.
const zeroLengthSq = 1e-18
