package outliner

import (
	"math"
	"sort"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func verifySolverRoots(t *testing.T, name string, roots, expected []float64, epsilon float64) {
	t.Helper()

	if len(roots) != len(expected) {
		t.Errorf("%s: got %d roots, want %d. roots=%v, expected=%v",
			name, len(roots), len(expected), roots, expected)
		return
	}
	sorted := append([]float64(nil), roots...)
	sort.Float64s(sorted)
	for i := range sorted {
		if !almostEqual(sorted[i], expected[i], epsilon) {
			t.Errorf("%s: root[%d] = %v, want %v", name, i, sorted[i], expected[i])
		}
	}
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  float64
		expected []float64
	}{
		{"x^2 - 5 = 0 (two roots)", 1, 0, -5, []float64{-math.Sqrt(5), math.Sqrt(5)}},
		{"x^2 + 5 = 0 (no real roots)", 1, 0, 5, nil},
		{"x + 5 = 0 (linear)", 0, 1, 5, []float64{-5}},
		{"x^2 + 2x + 1 = 0 (double root)", 1, 2, 1, []float64{-1}},
		{"x^2 - 5x + 6 = 0", 1, -5, 6, []float64{2, 3}},
		{"2x^2 - 10x + 12 = 0 (scaled)", 2, -10, 12, []float64{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := SolveQuadratic(tt.a, tt.b, tt.c)
			verifySolverRoots(t, tt.name, roots, tt.expected, 1e-10)
			for _, r := range roots {
				if val := tt.a*r*r + tt.b*r + tt.c; math.Abs(val) > 1e-8 {
					t.Errorf("root %v gives f(x) = %v, want 0", r, val)
				}
			}
		})
	}
}

func TestSolveQuadraticInUnitInterval(t *testing.T) {
	// (x - 0.25)(x - 2) = x^2 - 2.25x + 0.5
	roots := SolveQuadraticInUnitInterval(1, -2.25, 0.5)
	verifySolverRoots(t, "one root inside", roots, []float64{0.25}, 1e-10)

	// Roots just outside [0, 1] are clamped onto the boundary.
	roots = SolveQuadraticInUnitInterval(0, 1, 1e-14)
	verifySolverRoots(t, "clamped at zero", roots, []float64{0}, 1e-12)

	if roots := SolveQuadraticInUnitInterval(1, 0, 5); roots != nil {
		t.Errorf("no real roots: got %v, want nil", roots)
	}
}

func TestSolveQuadratic_AllZero(t *testing.T) {
	roots := SolveQuadratic(0, 0, 0)
	if len(roots) != 1 || roots[0] != 0 {
		t.Errorf("Degenerate case (all zero): got %v, want [0]", roots)
	}
}

func TestSolve2x2(t *testing.T) {
	// 2x + y = 5, x - y = 1 -> x = 2, y = 1
	x, y, ok := solve2x2(2, 1, 1, -1, 5, 1)
	if !ok || !almostEqual(x, 2, 1e-12) || !almostEqual(y, 1, 1e-12) {
		t.Errorf("solve2x2 = (%v, %v, %v), want (2, 1, true)", x, y, ok)
	}
	if _, _, ok := solve2x2(1, 2, 2, 4, 1, 2); ok {
		t.Error("singular system should report ok=false")
	}
}

func TestIntersectRays(t *testing.T) {
	u, v, ok := intersectRays(Pt(0, 0), Pt(1, 0), Pt(5, -5), Pt(0, 1))
	if !ok || !almostEqual(u, 5, 1e-12) || !almostEqual(v, 5, 1e-12) {
		t.Errorf("intersectRays = (%v, %v, %v), want (5, 5, true)", u, v, ok)
	}
	if _, _, ok := intersectRays(Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(2, 0)); ok {
		t.Error("parallel rays should not intersect")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		expect bool
	}{
		{"positive", 1.0, true},
		{"zero", 0.0, true},
		{"inf", math.Inf(1), false},
		{"neg inf", math.Inf(-1), false},
		{"nan", math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isFinite(tt.x); got != tt.expect {
				t.Errorf("isFinite(%v) = %v, want %v", tt.x, got, tt.expect)
			}
		})
	}
}
