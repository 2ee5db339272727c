package outliner

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/gogpu/outliner/internal/cache"
)

// GlyphSource resolves component base glyphs by name.
type GlyphSource interface {
	Glyph(name string) (*Path, bool)
}

// GlyphMap is a GlyphSource backed by a map.
type GlyphMap map[string]*Path

// Glyph returns the named glyph.
func (m GlyphMap) Glyph(name string) (*Path, bool) {
	p, ok := m[name]
	return p, ok && p != nil
}

// Stats counts component work done by an Engine.
type Stats struct {
	// ComponentBuilds is the number of base glyphs stroked for reuse.
	ComponentBuilds int64
	// CacheHits is the number of component references served from the cache.
	CacheHits int64
	// Glyphs is the number of outlines computed through Outline.
	Glyphs int64
}

// Engine computes outlines for one Options value. It owns the component
// cache for a batch run: create one Engine per run and drop it afterwards.
//
// Engine is safe for concurrent use.
type Engine struct {
	stroker stroker
	glyphs  GlyphSource

	components *cache.Memo[string, *Path]

	componentBuilds atomic.Int64
	cacheHits       atomic.Int64
	outlines        atomic.Int64
}

// NewEngine creates an engine. glyphs may be nil when no component needs
// resolving.
func NewEngine(opts Options, glyphs GlyphSource) *Engine {
	if glyphs == nil {
		glyphs = GlyphMap{}
	}
	return &Engine{
		stroker:    newStroker(opts),
		glyphs:     glyphs,
		components: cache.NewMemo[string, *Path](),
	}
}

// Options returns the engine's options.
func (e *Engine) Options() Options {
	return e.stroker.opts
}

// Outline strokes src. The result holds contours only: with
// PreserveComponents each component is replaced by its base glyph's cached
// outline under the component transform, otherwise components are
// decomposed before stroking.
func (e *Engine) Outline(src *Path) *Path {
	if src == nil {
		return &Path{}
	}
	opts := e.stroker.opts
	if opts.Thickness <= 0 {
		return src.Clone()
	}
	e.outlines.Add(1)

	result := e.outline(src, nil)
	if opts.KeepBounds {
		if bounds, ok := e.decompose(src, nil).Bounds(); ok {
			keepBounds(result, bounds)
		}
	}
	return result
}

// OutlineGlyph strokes the named glyph from the engine's source.
func (e *Engine) OutlineGlyph(name string) (*Path, error) {
	src, ok := e.glyphs.Glyph(name)
	if !ok {
		return nil, fmt.Errorf("outliner: %q: %w", name, ErrGlyphNotFound)
	}
	return e.outlineNamed(name, src), nil
}

// outlineNamed strokes a glyph known by name. With PreserveComponents the
// result is shared with the component cache, so a glyph that is also used
// as a component base is stroked only once per engine.
func (e *Engine) outlineNamed(name string, src *Path) *Path {
	opts := e.stroker.opts
	if opts.PreserveComponents && !opts.KeepBounds && opts.Thickness > 0 {
		if out, ok := e.componentOutline(name, nil); ok {
			e.outlines.Add(1)
			return out.Clone()
		}
	}
	return e.Outline(src)
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		ComponentBuilds: e.componentBuilds.Load(),
		CacheHits:       e.cacheHits.Load(),
		Glyphs:          e.outlines.Load(),
	}
}

// Reset clears the component cache and counters, for reuse after the
// glyph source changed.
func (e *Engine) Reset() {
	e.components.Reset()
	e.componentBuilds.Store(0)
	e.cacheHits.Store(0)
	e.outlines.Store(0)
}

// outline strokes src without the top-level bounds adjustment. visiting
// holds the base glyphs on the current component chain.
func (e *Engine) outline(src *Path, visiting []string) *Path {
	work := src
	if !e.stroker.opts.PreserveComponents {
		work = e.decompose(src, visiting)
	}

	result := &Path{}
	l := e.stroker.assemble(work.Contours)
	l.appendTo(result)

	if !e.stroker.opts.PreserveComponents {
		return result
	}
	for _, comp := range src.Components {
		base, ok := e.componentOutline(comp.BaseGlyph, visiting)
		if !ok {
			continue
		}
		for _, c := range base.Contours {
			result.AddContour(c.Transform(comp.Transform))
		}
	}
	return result
}

// componentOutline returns the stroked outline of a base glyph, computing
// it at most once per engine.
func (e *Engine) componentOutline(name string, visiting []string) (*Path, bool) {
	if slices.Contains(visiting, name) {
		Logger().Warn("outliner: component cycle", "glyph", name, "chain", visiting)
		return nil, false
	}
	base, ok := e.glyphs.Glyph(name)
	if !ok {
		Logger().Warn("outliner: missing component base glyph", "glyph", name)
		return nil, false
	}

	chain := append(visiting[:len(visiting):len(visiting)], name)
	out, created := e.components.GetOrCreate(name, func() *Path {
		e.componentBuilds.Add(1)
		return e.outline(base, chain)
	})
	if created {
		Logger().Debug("outliner: stroked component base", "glyph", name, "contours", len(out.Contours))
	} else {
		e.cacheHits.Add(1)
	}
	return out, true
}

// decompose flattens component references into absolute contours.
// Missing bases and reference cycles are skipped.
func (e *Engine) decompose(src *Path, visiting []string) *Path {
	if len(src.Components) == 0 {
		return src
	}
	out := &Path{Contours: append([]Contour(nil), src.Contours...)}
	for _, comp := range src.Components {
		if slices.Contains(visiting, comp.BaseGlyph) {
			Logger().Warn("outliner: component cycle", "glyph", comp.BaseGlyph, "chain", visiting)
			continue
		}
		base, ok := e.glyphs.Glyph(comp.BaseGlyph)
		if !ok {
			Logger().Warn("outliner: missing component base glyph", "glyph", comp.BaseGlyph)
			continue
		}
		chain := append(visiting[:len(visiting):len(visiting)], comp.BaseGlyph)
		flat := e.decompose(base, chain)
		for _, c := range flat.Contours {
			out.Contours = append(out.Contours, c.Transform(comp.Transform))
		}
	}
	return out
}
