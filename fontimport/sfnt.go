package fontimport

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// sfntFace wraps an sfnt.Font. Every call uses its own Buffer, so the face
// can be shared.
type sfntFace struct {
	font *sfnt.Font
	name string
}

func parseSFNT(data []byte) (face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFont, err)
	}
	var buf sfnt.Buffer
	name, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFont, err)
	}
	return sfntFace{font: f, name: name}, nil
}

func (f sfntFace) family() string { return f.name }

func (f sfntFace) unitsPerEm() int { return int(f.font.UnitsPerEm()) }

func (f sfntFace) glyph(r rune) (importedGlyph, bool, error) {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil {
		return importedGlyph{}, false, err
	}
	if idx == 0 {
		return importedGlyph{}, false, nil
	}

	// One pixel per em unit keeps coordinates in font units.
	ppem := fixed.I(f.unitsPerEm())
	segments, err := f.font.LoadGlyph(&buf, idx, ppem, nil)
	if err != nil {
		return importedGlyph{}, false, err
	}
	advance, err := f.font.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
	if err != nil {
		return importedGlyph{}, false, err
	}
	name, err := f.font.GlyphName(&buf, idx)
	if err != nil {
		name = ""
	}

	sink := newPathSink()
	for _, s := range segments {
		// sfnt points grow downwards.
		a := s.Args
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			sink.moveTo(unit(a[0].X), -unit(a[0].Y))
		case sfnt.SegmentOpLineTo:
			sink.lineTo(unit(a[0].X), -unit(a[0].Y))
		case sfnt.SegmentOpQuadTo:
			sink.quadTo(unit(a[0].X), -unit(a[0].Y), unit(a[1].X), -unit(a[1].Y))
		case sfnt.SegmentOpCubeTo:
			sink.cubeTo(unit(a[0].X), -unit(a[0].Y), unit(a[1].X), -unit(a[1].Y),
				unit(a[2].X), -unit(a[2].Y))
		}
	}
	return importedGlyph{name: name, advance: unit(advance), path: sink.path()}, true, nil
}

func unit(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
