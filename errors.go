package outliner

import "errors"

// ErrGlyphNotFound is returned when a requested glyph is not in the source.
var ErrGlyphNotFound = errors.New("outliner: glyph not found")
