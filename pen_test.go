package outliner

import (
	"math"
	"testing"
)

func TestPen_UniformWithoutContrast(t *testing.T) {
	pen := NewPen(DefaultOptions().WithThickness(12).WithContrast(0, 37))
	if !pen.Uniform() {
		t.Fatal("pen without contrast should be uniform")
	}
	for deg := 0.0; deg < 360; deg += 15 {
		a := deg * math.Pi / 180
		if d := pen.Distance(Pt(math.Cos(a), math.Sin(a))); d != 12 {
			t.Errorf("Distance at %v deg = %v, want 12", deg, d)
		}
	}
}

func TestPen_Contrast(t *testing.T) {
	tests := []struct {
		name    string
		angle   float64
		tangent Point
		want    float64
	}{
		{"along nib", 0, Pt(1, 0), 30},
		{"backwards along nib", 0, Pt(-1, 0), 30},
		{"across nib", 0, Pt(0, 1), 10},
		{"rotated nib", 90, Pt(0, 1), 30},
		{"rotated nib across", 90, Pt(1, 0), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pen := NewPen(DefaultOptions().WithThickness(10).WithContrast(20, tt.angle))
			if d := pen.Distance(tt.tangent); !almostEqual(d, tt.want, 1e-9) {
				t.Errorf("Distance(%v) = %v, want %v", tt.tangent, d, tt.want)
			}
		})
	}

	// In between, the distance stays within the axes.
	pen := NewPen(DefaultOptions().WithThickness(10).WithContrast(20, 30))
	d := pen.Distance(Pt(1, 1))
	if d <= 10 || d >= 30 {
		t.Errorf("diagonal Distance = %v, want within (10, 30)", d)
	}
	inner, outer := pen.Distances(Pt(1, 1))
	if inner != d || outer != d {
		t.Errorf("Distances = %v, %v; want %v for both", inner, outer, d)
	}
}

func TestPen_NegativeContrastClamped(t *testing.T) {
	pen := NewPen(DefaultOptions().WithContrast(-5, 0))
	if !pen.Uniform() {
		t.Error("negative contrast should be clamped to a uniform pen")
	}
}

func TestParseStyles(t *testing.T) {
	joins := map[string]JoinStyle{
		"Square": JoinMiter, "miter": JoinMiter,
		"Round": JoinRound,
		"Butt":  JoinBevel, " bevel ": JoinBevel,
	}
	for in, want := range joins {
		got, err := ParseJoinStyle(in)
		if err != nil || got != want {
			t.Errorf("ParseJoinStyle(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseJoinStyle("wobbly"); err == nil {
		t.Error("ParseJoinStyle should reject unknown names")
	}

	for _, c := range []CapStyle{CapSquare, CapRound, CapButt} {
		got, err := ParseCapStyle(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCapStyle(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCapStyle("miter"); err == nil {
		t.Error("ParseCapStyle should reject join names")
	}
}
