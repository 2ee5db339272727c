package outliner

import "math"

// Pen models an elliptical nib. Its semi-axes are Thickness+Contrast,
// lying along the contrast angle, and Thickness across it.
type Pen struct {
	major, minor float64
	angle        float64 // radians
}

// NewPen builds the nib for opts.
func NewPen(opts Options) Pen {
	opts = opts.normalized()
	return Pen{
		major: opts.Thickness + opts.Contrast,
		minor: opts.Thickness,
		angle: opts.ContrastAngle * math.Pi / 180,
	}
}

// Uniform reports whether the pen has constant width.
func (p Pen) Uniform() bool {
	return p.major == p.minor
}

// Distance returns the offset distance for a stroke travelling along tangent.
// It is the ellipse radius at the tangent's angle from the nib axis:
// largest along the contrast angle, smallest across it.
func (p Pen) Distance(tangent Point) float64 {
	if p.Uniform() {
		return p.minor
	}
	phi := tangent.Angle() - p.angle
	sin, cos := math.Sincos(phi)
	a, b := p.major, p.minor
	return a * b / math.Hypot(b*cos, a*sin)
}

// Distances returns the inner and outer offset distances along tangent.
// The nib is symmetric so both sides receive the same distance.
func (p Pen) Distances(tangent Point) (inner, outer float64) {
	d := p.Distance(tangent)
	return d, d
}
