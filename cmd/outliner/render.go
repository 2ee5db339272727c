package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/outliner"
	"github.com/gogpu/outliner/glyphset"
	"github.com/gogpu/outliner/internal/config"
	"github.com/gogpu/outliner/preview"
)

func cmdPreview(ctx context.Context, a *app, args []string) error {
	f := newFlags(a, "preview", "font.yaml glyph")
	f.outline()
	f.preview()
	var output string
	f.fs.StringVar(&output, "o", "", "PNG file (default: <glyph>.png)")
	if err := f.parse(args); err != nil {
		return err
	}
	if err := f.needArgs(2, 2); err != nil {
		return err
	}
	font, err := glyphset.Load(f.fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := a.setup(ctx, f, font, false)
	if err != nil {
		return err
	}
	defer s.close()

	name := f.fs.Arg(1)
	src, err := font.Source()
	if err != nil {
		return err
	}
	result, err := outliner.NewEngine(s.opts, src).OutlineGlyph(name)
	if err != nil {
		return err
	}
	source, err := sourceOutline(s.opts, src, name)
	if err != nil {
		return err
	}

	opts, err := previewOptions(s.cfg.Preview)
	if err != nil {
		return err
	}
	if output == "" {
		output = name + ".png"
	}
	if err := writeFile(output, func(w *os.File) error {
		return preview.WritePNG(w, result, source, opts)
	}); err != nil {
		return err
	}
	a.ui.ok("wrote %s", output)
	return nil
}

func cmdProof(ctx context.Context, a *app, args []string) error {
	f := newFlags(a, "proof", "font.yaml [glyph...]")
	f.outline()
	f.preview()
	var output, title string
	f.fs.StringVar(&output, "o", "proof.pdf", "PDF file")
	f.fs.StringVar(&title, "title", "", "page title (default: font name and options)")
	if err := f.parse(args); err != nil {
		return err
	}
	if err := f.needArgs(1, -1); err != nil {
		return err
	}
	font, err := glyphset.Load(f.fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := a.setup(ctx, f, font, false)
	if err != nil {
		return err
	}
	defer s.close()

	src, err := font.Source()
	if err != nil {
		return err
	}
	names := f.fs.Args()[1:]
	if len(names) == 0 {
		names = font.GlyphNames()
	}
	results, err := outliner.NewEngine(s.opts, src).Batch(ctx, names, s.cfg.Workers)
	if err != nil {
		return err
	}

	glyphs := make([]preview.ProofGlyph, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			a.ui.warn("%v", r.Err)
			continue
		}
		source, err := sourceOutline(s.opts, src, r.Name)
		if err != nil {
			return err
		}
		glyphs = append(glyphs, preview.ProofGlyph{Name: r.Name, Source: source, Result: r.Path})
	}

	fill, err := preview.ParseColor(s.cfg.Preview.Color)
	if err != nil {
		return err
	}
	if title == "" {
		title = fmt.Sprintf("%s  thickness %g  contrast %g at %g  %s joins",
			font.Name, s.opts.Thickness, s.opts.Contrast, s.opts.ContrastAngle, strings.ToLower(s.opts.Join.String()))
	}
	popts := preview.ProofOptions{
		Title:      title,
		Columns:    s.cfg.Preview.Columns,
		UnitsPerEm: float64(font.UnitsPerEm),
		Color:      fill,
		Stroke:     s.cfg.Preview.Stroke,
	}
	if err := writeFile(output, func(w *os.File) error {
		return preview.WriteProof(w, glyphs, popts)
	}); err != nil {
		return err
	}
	a.ui.ok("wrote %d glyphs to %s", len(glyphs), output)
	return nil
}

// sourceOutline returns the glyph's decomposed source contours, for the
// overlay drawn over a preview.
func sourceOutline(opts outliner.Options, src outliner.GlyphSource, name string) (*outliner.Path, error) {
	o := opts.WithLayers(true, false, false)
	o.PreserveComponents = false
	o.KeepBounds = false
	if o.Thickness <= 0 {
		o.Thickness = 1
	}
	return outliner.NewEngine(o, src).OutlineGlyph(name)
}

func previewOptions(pc config.PreviewConfig) (preview.Options, error) {
	opts := preview.DefaultOptions()
	if pc.Size > 0 {
		opts.Size = pc.Size
	}
	opts.Fill = pc.Fill
	opts.Stroke = pc.Stroke
	if pc.Color != "" {
		c, err := preview.ParseColor(pc.Color)
		if err != nil {
			return opts, err
		}
		opts.Color = c
	}
	opts.Background = color.White
	return opts, nil
}

// writeFile creates path, creating missing directories, and runs write on it.
func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
