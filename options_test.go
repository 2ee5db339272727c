package outliner

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Thickness != 10 {
		t.Errorf("Thickness = %v, want 10", o.Thickness)
	}
	if o.Join != JoinMiter || o.Cap != CapSquare {
		t.Errorf("Join, Cap = %v, %v, want Square, Square", o.Join, o.Cap)
	}
	if o.MiterLimit != 10 {
		t.Errorf("MiterLimit = %v, want 10", o.MiterLimit)
	}
	if !o.FilterDoubles || !o.AddInner || !o.AddOuter || o.AddOriginal {
		t.Errorf("layers/filter = %+v", o)
	}
	if o.CloseOpenPaths || o.OptimizeCurve || o.PreserveComponents || o.KeepBounds {
		t.Errorf("unexpected flags set: %+v", o)
	}
}

func TestOptions_WithIsCopy(t *testing.T) {
	base := DefaultOptions()
	o := base.WithThickness(25).
		WithContrast(5, 30).
		WithJoin(JoinRound).
		WithCap(CapButt).
		WithMiterLimit(2).
		WithLayers(true, false, true)

	if base.Thickness != 10 || base.Join != JoinMiter {
		t.Errorf("base modified: %+v", base)
	}
	want := Options{
		Thickness: 25, Contrast: 5, ContrastAngle: 30,
		Join: JoinRound, Cap: CapButt, MiterLimit: 2,
		FilterDoubles: true, AddOriginal: true, AddOuter: true,
	}
	if o != want {
		t.Errorf("got %+v\nwant %+v", o, want)
	}
}

func TestOptions_Normalized(t *testing.T) {
	o := Options{Contrast: -3, MiterLimit: 0.5}.normalized()
	if o.Contrast != 0 {
		t.Errorf("Contrast = %v, want 0", o.Contrast)
	}
	if o.MiterLimit != 1 {
		t.Errorf("MiterLimit = %v, want 1", o.MiterLimit)
	}
}

func TestParseJoinStyle(t *testing.T) {
	tests := []struct {
		in   string
		want JoinStyle
	}{
		{"Square", JoinMiter},
		{"miter", JoinMiter},
		{" ROUND ", JoinRound},
		{"Butt", JoinBevel},
		{"bevel", JoinBevel},
	}
	for _, tt := range tests {
		got, err := ParseJoinStyle(tt.in)
		if err != nil {
			t.Errorf("ParseJoinStyle(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseJoinStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if back, err := ParseJoinStyle(got.String()); err != nil || back != got {
			t.Errorf("round trip of %v = %v, %v", got, back, err)
		}
	}
	if _, err := ParseJoinStyle("mitre-ish"); err == nil {
		t.Error("expected error for unknown join")
	}
}

func TestParseCapStyle(t *testing.T) {
	for _, c := range []CapStyle{CapSquare, CapRound, CapButt} {
		got, err := ParseCapStyle(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCapStyle(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCapStyle("triangle"); err == nil {
		t.Error("expected error for unknown cap")
	}
	if s := CapStyle(9).String(); s != "CapStyle(9)" {
		t.Errorf("String() = %q", s)
	}
}
