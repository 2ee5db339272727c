package main

import (
	"context"
	"strings"

	"github.com/gogpu/outliner/fontimport"
	"github.com/gogpu/outliner/glyphset"
)

const defaultChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func cmdImport(ctx context.Context, a *app, args []string) error {
	f := newFlags(a, "import", "font.ttf | \"Font Name\"")
	var (
		output  string
		chars   string
		name    string
		backend string
	)
	f.fs.StringVar(&output, "o", "", "glyph set file (default: <font name>.yaml)")
	f.fs.StringVar(&chars, "chars", defaultChars, "characters to import")
	f.fs.StringVar(&name, "name", "", "glyph set name (default: the font family)")
	f.fs.StringVar(&backend, "backend", "gotext", "font parser: gotext or sfnt")
	if err := f.parse(args); err != nil {
		return err
	}
	if err := f.needArgs(1, 1); err != nil {
		return err
	}
	be, err := fontimport.ParseBackend(backend)
	if err != nil {
		return err
	}
	s, err := a.setup(ctx, f, nil, false)
	if err != nil {
		return err
	}
	defer s.close()

	font, err := fontimport.ImportFile(f.fs.Arg(0), chars, fontimport.Options{Backend: be, Name: name})
	if err != nil {
		return err
	}
	if len(font.Glyphs) == 0 {
		a.ui.warn("no requested character is in %s", f.fs.Arg(0))
	}
	if output == "" {
		output = strings.ReplaceAll(font.Name, " ", "") + ".yaml"
	}
	if err := glyphset.Save(output, font); err != nil {
		return err
	}
	a.ui.ok("imported %d glyphs from %s into %s", len(font.Glyphs), f.fs.Arg(0), output)
	return nil
}
