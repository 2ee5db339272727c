package outliner

import (
	"context"
	"fmt"

	"github.com/gogpu/outliner/internal/parallel"
)

// BatchResult is the outcome for one glyph of a batch.
type BatchResult struct {
	Name string
	// Path is nil when Err is set.
	Path *Path
	Err  error
}

// Batch outlines the named glyphs on up to workers goroutines (0 means
// GOMAXPROCS) and returns one result per name, in input order.
//
// Component bases are stroked first on the calling goroutine so the
// parallel phase only reads the cache. Cancelling ctx skips glyphs that
// have not started; their results carry ctx.Err(). A glyph missing from
// the source is reported in its result and does not stop the batch.
func (e *Engine) Batch(ctx context.Context, names []string, workers int) ([]BatchResult, error) {
	results := make([]BatchResult, len(names))
	for i, name := range names {
		results[i].Name = name
	}
	log := Logger()

	if e.stroker.opts.PreserveComponents && e.stroker.opts.Thickness > 0 {
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return cancelled(results, err), err
			}
			src, ok := e.glyphs.Glyph(name)
			if !ok {
				continue
			}
			for _, comp := range src.Components {
				e.componentOutline(comp.BaseGlyph, nil)
			}
		}
	}

	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()
	log.Info("outliner: batch started", "glyphs", len(names), "workers", pool.Workers())

	done := make([]bool, len(names))
	ran := pool.Run(ctx, len(names), func(i int) {
		done[i] = true
		src, ok := e.glyphs.Glyph(names[i])
		if !ok {
			log.Warn("outliner: glyph not found", "glyph", names[i])
			results[i].Err = fmt.Errorf("outliner: %q: %w", names[i], ErrGlyphNotFound)
			return
		}
		results[i].Path = e.outlineNamed(names[i], src)
	})

	err := ctx.Err()
	if err != nil {
		for i := range results {
			if !done[i] {
				results[i].Err = err
			}
		}
	}
	log.Info("outliner: batch finished", "glyphs", ran, "skipped", len(names)-ran)
	return results, err
}

func cancelled(results []BatchResult, err error) []BatchResult {
	for i := range results {
		results[i].Err = err
	}
	return results
}
