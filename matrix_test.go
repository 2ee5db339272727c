package outliner

import (
	"math"
	"testing"
)

func TestMatrix_FromTransform(t *testing.T) {
	// Mirror in x and shift, as a component reference would.
	m := FromTransform(-1, 0, 0, 1, 500, 0)
	if got := m.TransformPoint(Pt(100, 200)); got != Pt(400, 200) {
		t.Errorf("TransformPoint() = %v, want (400, 200)", got)
	}
	if got := m.Transform(); got != [6]float64{-1, 0, 0, 1, 500, 0} {
		t.Errorf("Transform() = %v", got)
	}
	if m.Determinant() >= 0 {
		t.Errorf("mirror Determinant() = %v, want negative", m.Determinant())
	}

	skew := FromTransform(1, 0.2, 0.3, 1, 0, 0)
	if got := skew.TransformPoint(Pt(10, 10)); !pointsEqual(got, Pt(13, 12), epsilon) {
		t.Errorf("skew TransformPoint() = %v, want (13, 12)", got)
	}
}

func TestMatrix_MultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	if got := m.TransformPoint(Pt(1, 1)); got != Pt(12, 2) {
		t.Errorf("TransformPoint() = %v, want (12, 2)", got)
	}
}

func TestMatrix_Invert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"translate", Translate(5, -7)},
		{"scale", Scale(2, 0.5)},
		{"rotate", Rotate(math.Pi / 5)},
		{"component", FromTransform(0.8, 0.1, -0.2, 1.2, 30, 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pt(3, 9)
			got := tt.m.Invert().TransformPoint(tt.m.TransformPoint(p))
			if !pointsEqual(got, p, 1e-9) {
				t.Errorf("Invert round trip = %v, want %v", got, p)
			}
		})
	}
	if !(Matrix{}).Invert().IsIdentity() {
		t.Error("singular Invert() should return identity")
	}
}

func TestMatrix_ScaleAbout(t *testing.T) {
	c := Pt(50, 50)
	m := ScaleAbout(2, c)
	if got := m.TransformPoint(c); !pointsEqual(got, c, epsilon) {
		t.Errorf("center moved to %v", got)
	}
	if got := m.TransformPoint(Pt(60, 50)); !pointsEqual(got, Pt(70, 50), epsilon) {
		t.Errorf("TransformPoint() = %v, want (70, 50)", got)
	}
}
