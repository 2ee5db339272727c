package fontimport

import (
	"fmt"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// Detect reports the container of font data: "ttf" or "otf". WOFF files
// and anything that is not a font return ErrUnsupportedFont.
func Detect(data []byte) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedFont, err)
	}
	switch kind {
	case matchers.TypeTtf, matchers.TypeOtf:
		return kind.Extension, nil
	case filetype.Unknown:
		return "", ErrUnsupportedFont
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFont, kind.MIME.Value)
}
