package settings

import (
	"context"
	"strings"

	"github.com/gogpu/outliner/glyphset"
)

// LibPrefix namespaces outliner keys in a glyph set lib.
const LibPrefix = "com.gogpu.outliner."

// LibStore keeps settings inside a glyph set's lib. The caller saves the
// glyph set to persist changes.
type LibStore struct {
	Font *glyphset.Font
}

// Save writes every setting under LibPrefix.
func (s LibStore) Save(_ context.Context, st Settings) error {
	if s.Font.Lib == nil {
		s.Font.Lib = make(map[string]any)
	}
	for k, v := range st.Values() {
		s.Font.Lib[LibPrefix+k] = v
	}
	return nil
}

// Load reads the saved settings. A lib without a saved thickness has no
// settings.
func (s LibStore) Load(_ context.Context) (Settings, error) {
	if _, ok := s.Font.Lib[LibPrefix+KeyThickness]; !ok {
		return Settings{}, ErrNoSettings
	}
	values := make(map[string]any)
	for k, v := range s.Font.Lib {
		if key, ok := strings.CutPrefix(k, LibPrefix); ok {
			values[key] = v
		}
	}
	return FromValues(values)
}

// Clear removes every key under LibPrefix.
func (s LibStore) Clear(_ context.Context) error {
	for k := range s.Font.Lib {
		if strings.HasPrefix(k, LibPrefix) {
			delete(s.Font.Lib, k)
		}
	}
	return nil
}
