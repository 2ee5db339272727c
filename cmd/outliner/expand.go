package main

import (
	"context"
	"fmt"

	"github.com/gogpu/outliner"
	"github.com/gogpu/outliner/glyphset"
)

func cmdExpand(ctx context.Context, a *app, args []string) error {
	f := newFlags(a, "expand", "font.yaml [glyph...]")
	f.outline()
	var (
		job    expandJob
		output string
		saved  bool
	)
	f.fs.StringVar(&job.layer, "layer", "", "write results into this layer and keep the source glyphs")
	f.fs.BoolVar(&job.round, "round", false, "round coordinates to integers")
	f.fs.StringVar(&output, "o", "", "output file (default: overwrite the input)")
	f.fs.BoolVar(&saved, "saved", false, "start from the settings saved in the glyph set")
	if err := f.parse(args); err != nil {
		return err
	}
	if err := f.needArgs(1, -1); err != nil {
		return err
	}
	path := f.fs.Arg(0)
	font, err := glyphset.Load(path)
	if err != nil {
		return err
	}
	s, err := a.setup(ctx, f, font, saved)
	if err != nil {
		return err
	}
	defer s.close()

	job.names = f.fs.Args()[1:]
	job.workers = s.cfg.Workers
	rep, err := expandFont(ctx, font, s.opts, job)
	if err != nil {
		return err
	}
	if output == "" {
		output = path
	}
	if err := glyphset.Save(output, font); err != nil {
		return err
	}
	a.report(rep, output)
	return nil
}

// expandJob selects what expandFont outlines and where results go.
type expandJob struct {
	// names lists the glyphs to outline; empty means every glyph.
	names   []string
	layer   string
	round   bool
	workers int
}

type expandReport struct {
	done   int
	failed []error
	stats  outliner.Stats
}

// expandFont outlines glyphs of font and commits the results, either over
// the source glyphs or into the job's layer. Per-glyph failures are
// collected in the report; only cancellation aborts.
func expandFont(ctx context.Context, font *glyphset.Font, opts outliner.Options, job expandJob) (expandReport, error) {
	var rep expandReport
	src, err := font.Source()
	if err != nil {
		return rep, err
	}
	names := job.names
	if len(names) == 0 {
		names = font.GlyphNames()
	}

	e := outliner.NewEngine(opts, src)
	results, err := e.Batch(ctx, names, job.workers)
	if err != nil {
		return rep, err
	}

	var target *glyphset.Layer
	if job.layer != "" {
		target = font.Layer(job.layer, true)
	}
	for _, r := range results {
		if r.Err != nil {
			rep.failed = append(rep.failed, r.Err)
			continue
		}
		g := font.Glyph(r.Name)
		if target != nil {
			g = target.GlyphFor(g)
		}
		g.Commit(r.Path, job.round)
		rep.done++
	}
	rep.stats = e.Stats()
	return rep, nil
}

func (a *app) report(rep expandReport, output string) {
	for _, err := range rep.failed {
		a.ui.warn("%v", err)
	}
	msg := fmt.Sprintf("outlined %d glyphs into %s", rep.done, output)
	if rep.stats.ComponentBuilds > 0 {
		msg += fmt.Sprintf(" (%d component bases, %d reused)", rep.stats.ComponentBuilds, rep.stats.CacheHits)
	}
	a.ui.ok("%s", msg)
}
