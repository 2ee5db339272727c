// Package settings persists outliner settings per font.
//
// Settings are a flat key/value mapping. LibStore keeps them in the glyph
// set's lib under a namespaced prefix; SQLStore keeps them in a sqlite
// database keyed by font name.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gogpu/outliner"
)

// ErrNoSettings is returned by Load when nothing was saved for the font.
var ErrNoSettings = errors.New("settings: no saved settings")

// Store saves, loads and clears the settings of one font.
type Store interface {
	Save(ctx context.Context, s Settings) error
	Load(ctx context.Context) (Settings, error)
	Clear(ctx context.Context) error
}

// Display holds preview choices saved next to the outline options.
type Display struct {
	Preview bool
	Fill    bool
	Stroke  bool
	Color   string
}

// Settings is the persisted state of the outliner for one font.
type Settings struct {
	Options outliner.Options
	// MiterFromThickness keeps the miter limit equal to the thickness.
	MiterFromThickness bool
	Display            Display
}

// Default returns the settings of a fresh installation.
func Default() Settings {
	return Settings{
		Options:            outliner.DefaultOptions(),
		MiterFromThickness: true,
		Display:            Display{Preview: true, Fill: true, Stroke: true, Color: "#1f3a93"},
	}
}

// Keys, shared by every store.
const (
	KeyThickness          = "thickness"
	KeyContrast           = "contrast"
	KeyContrastAngle      = "contrastAngle"
	KeyMiterLimit         = "miterLimit"
	KeyMiterFromThickness = "connectmiterLimit"
	KeyCorner             = "corner"
	KeyCap                = "cap"
	KeyCloseOpenPaths     = "closeOpenPaths"
	KeyOptimizeCurve      = "optimizeCurve"
	KeyPreserveComponents = "preserveComponents"
	KeyFilterDoubles      = "filterDoubles"
	KeyAddOriginal        = "addOriginal"
	KeyAddInner           = "addInner"
	KeyAddOuter           = "addOuter"
	KeyKeepBounds         = "keepBounds"
	KeyPreview            = "preview"
	KeyFill               = "shouldFill"
	KeyStroke             = "shouldStroke"
	KeyColor              = "color"
)

// Values flattens s into its persisted form.
func (s Settings) Values() map[string]any {
	o := s.Options
	return map[string]any{
		KeyThickness:          o.Thickness,
		KeyContrast:           o.Contrast,
		KeyContrastAngle:      o.ContrastAngle,
		KeyMiterLimit:         o.MiterLimit,
		KeyMiterFromThickness: s.MiterFromThickness,
		KeyCorner:             o.Join.String(),
		KeyCap:                o.Cap.String(),
		KeyCloseOpenPaths:     o.CloseOpenPaths,
		KeyOptimizeCurve:      o.OptimizeCurve,
		KeyPreserveComponents: o.PreserveComponents,
		KeyFilterDoubles:      o.FilterDoubles,
		KeyAddOriginal:        o.AddOriginal,
		KeyAddInner:           o.AddInner,
		KeyAddOuter:           o.AddOuter,
		KeyKeepBounds:         o.KeepBounds,
		KeyPreview:            s.Display.Preview,
		KeyFill:               s.Display.Fill,
		KeyStroke:             s.Display.Stroke,
		KeyColor:              s.Display.Color,
	}
}

// FromValues rebuilds settings from a persisted mapping. Missing keys keep
// their defaults; unknown keys are ignored.
func FromValues(m map[string]any) (Settings, error) {
	s := Default()
	o := &s.Options

	floats := map[string]*float64{
		KeyThickness:     &o.Thickness,
		KeyContrast:      &o.Contrast,
		KeyContrastAngle: &o.ContrastAngle,
		KeyMiterLimit:    &o.MiterLimit,
	}
	for k, dst := range floats {
		v, ok := m[k]
		if !ok {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return s, fmt.Errorf("settings: %s: %w", k, err)
		}
		*dst = f
	}

	bools := map[string]*bool{
		KeyMiterFromThickness: &s.MiterFromThickness,
		KeyCloseOpenPaths:     &o.CloseOpenPaths,
		KeyOptimizeCurve:      &o.OptimizeCurve,
		KeyPreserveComponents: &o.PreserveComponents,
		KeyFilterDoubles:      &o.FilterDoubles,
		KeyAddOriginal:        &o.AddOriginal,
		KeyAddInner:           &o.AddInner,
		KeyAddOuter:           &o.AddOuter,
		KeyKeepBounds:         &o.KeepBounds,
		KeyPreview:            &s.Display.Preview,
		KeyFill:               &s.Display.Fill,
		KeyStroke:             &s.Display.Stroke,
	}
	for k, dst := range bools {
		v, ok := m[k]
		if !ok {
			continue
		}
		b, err := toBool(v)
		if err != nil {
			return s, fmt.Errorf("settings: %s: %w", k, err)
		}
		*dst = b
	}

	var err error
	if v, ok := m[KeyCorner].(string); ok {
		if o.Join, err = outliner.ParseJoinStyle(v); err != nil {
			return s, err
		}
	}
	if v, ok := m[KeyCap].(string); ok {
		if o.Cap, err = outliner.ParseCapStyle(v); err != nil {
			return s, err
		}
	}
	if v, ok := m[KeyColor].(string); ok {
		s.Display.Color = v
	}
	if s.MiterFromThickness {
		o.MiterLimit = o.Thickness
	}
	return s, nil
}

// Decoders hand numbers back as whichever type their format uses.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("not a number: %T", v)
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return b != 0, nil
	case int64:
		return b != 0, nil
	case uint64:
		return b != 0, nil
	case float64:
		return b != 0, nil
	case string:
		return strconv.ParseBool(b)
	}
	return false, fmt.Errorf("not a boolean: %T", v)
}
