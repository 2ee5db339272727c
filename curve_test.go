package outliner

import (
	"math"
	"testing"
)

const epsilon = 1e-10

func pointsEqual(p1, p2 Point, eps float64) bool {
	return math.Abs(p1.X-p2.X) < eps && math.Abs(p1.Y-p2.Y) < eps
}

// quarterCircle is the standard cubic approximation of a unit-radius
// quarter circle from (r, 0) to (0, r).
func quarterCircle(r float64) CubicBez {
	k := 0.5522847498 * r
	return CubicBez{P0: Pt(r, 0), P1: Pt(r, k), P2: Pt(k, r), P3: Pt(0, r)}
}

func TestRect(t *testing.T) {
	r := NewRect(Pt(10, 20), Pt(0, 0))
	if r.Min != Pt(0, 0) || r.Max != Pt(10, 20) {
		t.Fatalf("NewRect normalized = %+v", r)
	}
	if r.Width() != 10 || r.Height() != 20 {
		t.Errorf("Width, Height = %v, %v; want 10, 20", r.Width(), r.Height())
	}
	if c := r.Center(); c != Pt(5, 10) {
		t.Errorf("Center() = %v, want (5, 10)", c)
	}
	if got := r.Include(Pt(-5, 30)); got.Min != Pt(-5, 0) || got.Max != Pt(10, 30) {
		t.Errorf("Include() = %+v", got)
	}
	if !r.Contains(Pt(5, 5)) || r.Contains(Pt(11, 5)) {
		t.Error("Contains() wrong")
	}
}

func TestQuadBez_Raise(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(50, 100), P2: Pt(100, 0)}
	c := q.Raise()
	for _, tt := range []float64{0, 0.1, 0.33, 0.5, 0.9, 1} {
		if !pointsEqual(q.Eval(tt), c.Eval(tt), epsilon) {
			t.Errorf("Raise().Eval(%v) = %v, want %v", tt, c.Eval(tt), q.Eval(tt))
		}
	}
}

func TestCubicBez_Split(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(10, 40), P2: Pt(60, 40), P3: Pt(100, 0)}
	left, right := c.Split(0.3)
	if !pointsEqual(left.P3, c.Eval(0.3), epsilon) || left.P3 != right.P0 {
		t.Errorf("split point mismatch: %v, %v", left.P3, right.P0)
	}
	for _, tt := range []float64{0, 0.5, 1} {
		if !pointsEqual(left.Eval(tt), c.Eval(0.3*tt), 1e-9) {
			t.Errorf("left.Eval(%v) off curve", tt)
		}
		if !pointsEqual(right.Eval(tt), c.Eval(0.3+0.7*tt), 1e-9) {
			t.Errorf("right.Eval(%v) off curve", tt)
		}
	}
}

func TestCubicBez_Subsegment(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(10, 40), P2: Pt(60, 40), P3: Pt(100, 0)}
	sub := c.Subsegment(0.25, 0.75)
	for _, tt := range []float64{0, 0.5, 1} {
		if !pointsEqual(sub.Eval(tt), c.Eval(0.25+0.5*tt), 1e-9) {
			t.Errorf("Subsegment.Eval(%v) = %v, want %v", tt, sub.Eval(tt), c.Eval(0.25+0.5*tt))
		}
	}
}

func TestCubicBez_BoundingBox(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 100), P2: Pt(100, 100), P3: Pt(100, 0)}
	bb := c.BoundingBox()
	if !almostEqual(bb.Max.Y, 75, 1e-9) {
		t.Errorf("BoundingBox().Max.Y = %v, want 75", bb.Max.Y)
	}
	if bb.Min != Pt(0, 0) || !almostEqual(bb.Max.X, 100, epsilon) {
		t.Errorf("BoundingBox() = %+v", bb)
	}
}

func TestCubicBez_Curvature(t *testing.T) {
	// Counter-clockwise circle of radius 50 turns left: curvature ~ +1/50.
	c := quarterCircle(50)
	for _, tt := range []float64{0, 0.5, 1} {
		if k := c.Curvature(tt); !almostEqual(k, 1.0/50, 1e-3) {
			t.Errorf("Curvature(%v) = %v, want ~%v", tt, k, 1.0/50)
		}
	}
	if k := c.Reversed().Curvature(0.5); k >= 0 {
		t.Errorf("reversed curve should turn right, got curvature %v", k)
	}
}

func TestCubicBez_TangentFallback(t *testing.T) {
	// Both handles retracted onto their end points.
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 0), P2: Pt(100, 50), P3: Pt(100, 50)}
	if got := c.StartTangent(); got != Pt(100, 50) {
		t.Errorf("StartTangent() = %v, want (100, 50)", got)
	}
	if got := c.EndTangent(); got != Pt(100, 50) {
		t.Errorf("EndTangent() = %v, want (100, 50)", got)
	}
	if _, ok := c.TangentAt(0.5); !ok {
		t.Error("TangentAt(0.5) should be defined")
	}

	// A cusp: derivative vanishes in the interior.
	cusp := CubicBez{P0: Pt(0, 0), P1: Pt(100, 100), P2: Pt(0, 100), P3: Pt(100, 0)}
	if _, ok := cusp.TangentAt(0.5); ok {
		t.Error("TangentAt at a cusp should report ok=false")
	}
}

func TestCubicBez_ArcLength(t *testing.T) {
	c := quarterCircle(100)
	want := math.Pi * 100 / 2
	if got := c.ArcLength(1e-4); !almostEqual(got, want, 0.1) {
		t.Errorf("ArcLength() = %v, want ~%v", got, want)
	}
	line := CubicBez{P0: Pt(0, 0), P1: Pt(10, 0), P2: Pt(20, 0), P3: Pt(30, 0)}
	if got := line.ArcLength(1e-6); !almostEqual(got, 30, 1e-6) {
		t.Errorf("straight ArcLength() = %v, want 30", got)
	}
}

func TestCubicBez_SignedArea(t *testing.T) {
	// A straight cubic contributes the same area as the line.
	c := CubicBez{P0: Pt(10, 0), P1: Pt(10, 10), P2: Pt(10, 20), P3: Pt(10, 30)}
	l := Line{P0: Pt(10, 0), P1: Pt(10, 30)}
	if !almostEqual(c.SignedArea(), l.SignedArea(), epsilon) {
		t.Errorf("SignedArea() = %v, want %v", c.SignedArea(), l.SignedArea())
	}
}

func TestCubicBez_NearestDistance(t *testing.T) {
	c := quarterCircle(100)
	// The origin is the circle center.
	if d := c.NearestDistance(Pt(0, 0)); !almostEqual(d, 100, 0.05) {
		t.Errorf("NearestDistance(center) = %v, want ~100", d)
	}
	if d := c.NearestDistance(Pt(120, 0)); !almostEqual(d, 20, 1e-6) {
		t.Errorf("NearestDistance((120,0)) = %v, want 20", d)
	}
}
