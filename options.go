package outliner

import (
	"fmt"
	"strings"
)

// JoinStyle selects the geometry inserted at the outside of a corner.
type JoinStyle int

const (
	// JoinMiter extends both offsets to their intersection.
	JoinMiter JoinStyle = iota
	// JoinRound inserts a circular arc centred on the corner.
	JoinRound
	// JoinBevel connects the two offset ends with a straight chord.
	JoinBevel
)

// String returns the host name of the join style.
func (j JoinStyle) String() string {
	switch j {
	case JoinMiter:
		return "Square"
	case JoinRound:
		return "Round"
	case JoinBevel:
		return "Butt"
	default:
		return fmt.Sprintf("JoinStyle(%d)", int(j))
	}
}

// ParseJoinStyle parses a join name. Both the editor names
// ("Square", "Round", "Butt") and the geometric names
// ("miter", "round", "bevel") are accepted, case-insensitively.
func ParseJoinStyle(s string) (JoinStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "miter":
		return JoinMiter, nil
	case "round":
		return JoinRound, nil
	case "butt", "bevel":
		return JoinBevel, nil
	}
	return JoinMiter, fmt.Errorf("outliner: unknown join style %q", s)
}

// CapStyle selects the geometry closing the free ends of an open contour.
type CapStyle int

const (
	// CapSquare extends the stroke by the thickness beyond the end point.
	CapSquare CapStyle = iota
	// CapRound closes the end with a half circle.
	CapRound
	// CapButt closes the end with a straight chord.
	CapButt
)

// String returns the host name of the cap style.
func (c CapStyle) String() string {
	switch c {
	case CapSquare:
		return "Square"
	case CapRound:
		return "Round"
	case CapButt:
		return "Butt"
	default:
		return fmt.Sprintf("CapStyle(%d)", int(c))
	}
}

// ParseCapStyle parses a cap name ("Square", "Round", "Butt"), case-insensitively.
func ParseCapStyle(s string) (CapStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square":
		return CapSquare, nil
	case "round":
		return CapRound, nil
	case "butt":
		return CapButt, nil
	}
	return CapSquare, fmt.Errorf("outliner: unknown cap style %q", s)
}

// Options configures one outline computation. It is a plain value: every
// With method returns a modified copy.
type Options struct {
	// Thickness is the pen distance from the source contour, in font units.
	// Non-positive values turn the computation into a pass-through.
	Thickness float64

	// Contrast is extra width added along ContrastAngle.
	Contrast float64

	// ContrastAngle is the nib angle in degrees.
	ContrastAngle float64

	Join       JoinStyle
	Cap        CapStyle
	MiterLimit float64

	// CloseOpenPaths applies Cap to the ends of open contours.
	// Without it the ends are closed with a plain chord.
	CloseOpenPaths bool

	// OptimizeCurve fits fewer cubics with a looser tolerance and merges
	// collinear lines.
	OptimizeCurve bool

	// PreserveComponents strokes each referenced base glyph once and
	// reuses the result under every component transform.
	PreserveComponents bool

	// FilterDoubles removes points coincident with their predecessor.
	FilterDoubles bool

	AddOriginal bool
	AddInner    bool
	AddOuter    bool

	// KeepBounds rescales the result to the source height.
	KeepBounds bool
}

// DefaultOptions returns the settings a fresh installation starts with.
func DefaultOptions() Options {
	return Options{
		Thickness:     10,
		Contrast:      0,
		ContrastAngle: 0,
		Join:          JoinMiter,
		Cap:           CapSquare,
		MiterLimit:    10,
		FilterDoubles: true,
		AddInner:      true,
		AddOuter:      true,
	}
}

// WithThickness returns a copy of the Options with the given thickness.
func (o Options) WithThickness(t float64) Options {
	o.Thickness = t
	return o
}

// WithContrast returns a copy with the given contrast and nib angle in degrees.
func (o Options) WithContrast(contrast, angle float64) Options {
	o.Contrast = contrast
	o.ContrastAngle = angle
	return o
}

// WithJoin returns a copy of the Options with the given join style.
func (o Options) WithJoin(j JoinStyle) Options {
	o.Join = j
	return o
}

// WithCap returns a copy with the given cap style. Caps only apply when
// CloseOpenPaths is set.
func (o Options) WithCap(c CapStyle) Options {
	o.Cap = c
	return o
}

// WithMiterLimit returns a copy of the Options with the given miter limit.
func (o Options) WithMiterLimit(limit float64) Options {
	o.MiterLimit = limit
	return o
}

// WithLayers returns a copy selecting which layers are emitted.
func (o Options) WithLayers(original, inner, outer bool) Options {
	o.AddOriginal = original
	o.AddInner = inner
	o.AddOuter = outer
	return o
}

// normalized clamps out-of-range values to their nearest valid setting.
func (o Options) normalized() Options {
	if o.Contrast < 0 {
		o.Contrast = 0
	}
	if o.MiterLimit < 1 {
		o.MiterLimit = 1
	}
	return o
}
