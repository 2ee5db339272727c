package outliner

import (
	"testing"
)

func TestPathBuilder_Basic(t *testing.T) {
	path := BuildPath().
		MoveTo(0, 0).
		LineTo(100, 0).
		LineTo(100, 100).
		Close().
		Path()

	if len(path.Contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(path.Contours))
	}
	c := path.Contours[0]
	if !c.Closed {
		t.Error("contour should be closed")
	}
	if len(c.Segments) != 2 {
		t.Errorf("expected 2 segments, got %d", len(c.Segments))
	}
	if c.Start != Pt(0, 0) || c.End() != Pt(100, 100) {
		t.Errorf("start, end = %v, %v", c.Start, c.End())
	}
}

func TestPathBuilder_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *PathBuilder
		segments int
		area     float64
	}{
		{"Rect", func() *PathBuilder { return BuildPath().Rect(0, 0, 100, 50) }, 3, -5000},
		{"Circle", func() *PathBuilder { return BuildPath().Circle(0, 0, 10) }, 4, 314.16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.builder().Path()
			if len(path.Contours) != 1 {
				t.Fatalf("expected 1 contour, got %d", len(path.Contours))
			}
			c := path.Contours[0]
			if len(c.Segments) != tt.segments {
				t.Errorf("expected %d segments, got %d", tt.segments, len(c.Segments))
			}
			if a := c.SignedArea(); a < tt.area-0.5 || a > tt.area+0.5 {
				t.Errorf("SignedArea() = %v, want %v", a, tt.area)
			}
		})
	}
}

func TestPathBuilder_OpenContours(t *testing.T) {
	path := BuildPath().
		MoveTo(0, 0).LineTo(10, 0).
		MoveTo(0, 10).LineTo(10, 10).End().
		Path()

	if len(path.Contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(path.Contours))
	}
	for i, c := range path.Contours {
		if c.Closed {
			t.Errorf("contour %d should be open", i)
		}
	}
}

func TestPathBuilder_Component(t *testing.T) {
	path := BuildPath().
		Rect(0, 0, 10, 10).
		Component("A", Translate(200, 0)).
		Path()

	if len(path.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(path.Components))
	}
	if got := path.Components[0].BaseGlyph; got != "A" {
		t.Errorf("BaseGlyph = %q, want A", got)
	}
}

func TestPathBuilder_Quad(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).QuadTo(50, 100, 100, 0).Close().Path()
	seg, ok := p.Contours[0].Segments[0].(CubicTo)
	if !ok {
		t.Fatalf("QuadTo stored %T, want CubicTo", p.Contours[0].Segments[0])
	}
	if !pointsEqual(seg.Control1, Pt(100.0/3, 200.0/3), 1e-9) {
		t.Errorf("raised Control1 = %v", seg.Control1)
	}
	if !p.Contours[0].Closed {
		t.Error("contour should be closed")
	}
}

func TestPathBuilder_SkipsEmpty(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).MoveTo(10, 10).LineTo(20, 20).Path()
	if len(p.Contours) != 1 {
		t.Errorf("got %d contours, want 1", len(p.Contours))
	}
}
