package glyphset

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidGlyphSet is matched by every ValidationError.
var ErrInvalidGlyphSet = errors.New("glyphset: invalid glyph set")

//go:embed schema.json
var schemaJSON string

var schema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
})

// ValidationError lists the problems found in a glyph set.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidGlyphSet, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidGlyphSet }

// Validate checks f against the glyph set schema and for duplicate glyph
// names within a layer.
func Validate(f *Font) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("glyphset: schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(f))
	if err != nil {
		return fmt.Errorf("glyphset: validate: %w", err)
	}

	var problems []string
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	problems = append(problems, duplicates("", f.Glyphs)...)
	for _, l := range f.Layers {
		problems = append(problems, duplicates(l.Name, l.Glyphs)...)
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func duplicates(layer string, glyphs []Glyph) []string {
	var out []string
	seen := make(map[string]bool, len(glyphs))
	for _, g := range glyphs {
		if seen[g.Name] {
			where := "default layer"
			if layer != "" {
				where = "layer " + layer
			}
			out = append(out, fmt.Sprintf("duplicate glyph %q in %s", g.Name, where))
		}
		seen[g.Name] = true
	}
	return out
}
