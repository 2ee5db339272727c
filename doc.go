// Package outliner converts a glyph outline into the outline of a pen
// stroke traced around it.
//
// # Overview
//
// Given a glyph path (contours of lines and cubic curves, plus component
// references) and an [Options] value, the engine offsets every contour to
// both sides, resolves corners with miter, round or bevel joins, caps open
// contours, and returns the result as a new [Path].
//
// # Quick Start
//
//	import "github.com/gogpu/outliner"
//
//	src := outliner.BuildPath().Rect(0, 0, 100, 100).Path()
//	opts := outliner.DefaultOptions().WithThickness(10)
//	result := outliner.ComputeOutline(src, opts)
//
// For a whole font, create one [Engine] per run so component base glyphs
// are stroked once and shared:
//
//	e := outliner.NewEngine(opts, glyphs)
//	results, err := e.Batch(ctx, names, 0)
//
// # Layers
//
// AddOriginal, AddInner and AddOuter select the emitted layers
// independently. Inner and outer contours of a closed source contour wind
// in opposite directions, so together they fill as a ring under both the
// nonzero and even-odd rules.
//
// # Coordinate System
//
// Glyph space: y increases upwards, units are font units, and a positive
// signed area means counter-clockwise winding. Angles are in degrees in
// [Options] and radians elsewhere.
//
// # Self-intersection
//
// When the thickness exceeds the local radius of curvature the inner
// offset loops over itself. The raw contour is returned; resolving the
// overlap is left to the fill rule of whatever renders or exports it.
package outliner

// Version is the current version of the library.
const Version = "0.1.0"
