package fontimport

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// goTextFace keeps the parsed *font.Font, which is safe for concurrent
// use, and creates a Face per lookup.
type goTextFace struct {
	font *font.Font
}

func parseGoText(data []byte) (face, error) {
	ft, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFont, err)
	}
	return goTextFace{font: ft.Font}, nil
}

// family is unknown to this backend: go-text does not expose the name
// table through Font.
func (f goTextFace) family() string { return "" }

func (f goTextFace) unitsPerEm() int { return int(f.font.Upem()) }

func (f goTextFace) glyph(r rune) (importedGlyph, bool, error) {
	gid, ok := f.font.NominalGlyph(r)
	if !ok {
		return importedGlyph{}, false, nil
	}
	fc := font.NewFace(f.font)
	g := importedGlyph{advance: float64(fc.HorizontalAdvance(gid))}

	outline, ok := fc.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return importedGlyph{}, false, fmt.Errorf("glyph %d has no outline", gid)
	}
	sink := newPathSink()
	for _, s := range outline.Segments {
		a := s.Args
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			sink.moveTo(float64(a[0].X), float64(a[0].Y))
		case opentype.SegmentOpLineTo:
			sink.lineTo(float64(a[0].X), float64(a[0].Y))
		case opentype.SegmentOpQuadTo:
			sink.quadTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y))
		case opentype.SegmentOpCubeTo:
			sink.cubeTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y),
				float64(a[2].X), float64(a[2].Y))
		}
	}
	g.path = sink.path()
	return g, true, nil
}
