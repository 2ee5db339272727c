// Package fontimport reads glyph outlines out of TrueType and OpenType
// fonts into a glyph set document.
//
// Two parsers are available. The default uses go-text/typesetting; the
// alternative uses golang.org/x/image/font/sfnt. Both return outlines in
// font units with the y axis pointing up, and quadratic segments raised to
// cubics.
//
//	f, err := fontimport.ImportFile("DejaVu Sans", "abc", fontimport.Options{})
package fontimport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/flopp/go-findfont"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/outliner"
	"github.com/gogpu/outliner/glyphset"
	"github.com/gogpu/outliner/internal/cache"
)

// ErrUnsupportedFont is returned for data that is not a TrueType or
// OpenType font.
var ErrUnsupportedFont = errors.New("fontimport: unsupported font data")

// Backend selects the font parser.
type Backend int

const (
	// BackendGoText parses with github.com/go-text/typesetting.
	BackendGoText Backend = iota
	// BackendSFNT parses with golang.org/x/image/font/sfnt.
	BackendSFNT
)

// String returns the backend name accepted by ParseBackend.
func (b Backend) String() string {
	switch b {
	case BackendGoText:
		return "gotext"
	case BackendSFNT:
		return "sfnt"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gotext", "go-text":
		return BackendGoText, nil
	case "sfnt", "ximage":
		return BackendSFNT, nil
	}
	return 0, fmt.Errorf("fontimport: unknown backend %q", s)
}

// Options configures an import.
type Options struct {
	Backend Backend
	// Name is the document name. Empty uses the font's family name, or
	// the file name for ImportFile.
	Name string
}

// face is a parsed font.
type face interface {
	family() string
	unitsPerEm() int
	// glyph returns the outline for r. ok is false when the font has no
	// glyph mapped to r.
	glyph(r rune) (g importedGlyph, ok bool, err error)
}

type importedGlyph struct {
	// name is the font's own glyph name, if it has one.
	name    string
	advance float64
	path    *outliner.Path
}

// faces holds parsed fonts by backend and file path.
var faces = cache.New[faceKey, face](16)

type faceKey struct {
	backend Backend
	path    string
}

// Import parses data and converts the glyphs for chars. Characters are
// NFC normalized and deduplicated; characters the font does not map are
// skipped with a warning.
func Import(data []byte, chars string, opts Options) (*glyphset.Font, error) {
	f, err := parse(data, opts.Backend)
	if err != nil {
		return nil, err
	}
	return build(f, chars, opts.Name)
}

// ImportFile is Import for a font file. A nameOrPath that is not an
// existing file is looked up among the installed system fonts.
func ImportFile(nameOrPath, chars string, opts Options) (*glyphset.Font, error) {
	path, err := Resolve(nameOrPath)
	if err != nil {
		return nil, err
	}
	key := faceKey{backend: opts.Backend, path: path}
	f, ok := faces.Get(key)
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fontimport: %w", err)
		}
		if f, err = parse(data, opts.Backend); err != nil {
			return nil, fmt.Errorf("fontimport: %s: %w", path, err)
		}
		faces.Set(key, f)
	}

	name := opts.Name
	if name == "" && f.family() == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return build(f, chars, name)
}

// Resolve returns nameOrPath if it names a file, otherwise the path of the
// matching system font.
func Resolve(nameOrPath string) (string, error) {
	if st, err := os.Stat(nameOrPath); err == nil && !st.IsDir() {
		return nameOrPath, nil
	}
	path, err := findfont.Find(nameOrPath)
	if err != nil {
		return "", fmt.Errorf("fontimport: font %q: %w", nameOrPath, err)
	}
	outliner.Logger().Debug("fontimport: resolved system font", "name", nameOrPath, "path", path)
	return path, nil
}

func parse(data []byte, backend Backend) (face, error) {
	if _, err := Detect(data); err != nil {
		return nil, err
	}
	switch backend {
	case BackendGoText:
		return parseGoText(data)
	case BackendSFNT:
		return parseSFNT(data)
	}
	return nil, fmt.Errorf("fontimport: unknown backend %v", backend)
}

func build(f face, chars, name string) (*glyphset.Font, error) {
	if name == "" {
		name = f.family()
	}
	doc := &glyphset.Font{Name: name, UnitsPerEm: f.unitsPerEm()}
	seen := make(map[string]bool)
	for _, r := range Runes(chars) {
		g, ok, err := f.glyph(r)
		if err != nil {
			return nil, fmt.Errorf("fontimport: %U: %w", r, err)
		}
		if !ok {
			outliner.Logger().Warn("fontimport: character not in font", "char", string(r), "code", fmt.Sprintf("%U", r))
			continue
		}
		gname := g.name
		if gname == "" || gname == ".notdef" || seen[gname] {
			gname = GlyphName(r)
		}
		seen[gname] = true

		out := glyphset.Glyph{
			Name:     gname,
			Unicodes: []int{int(r)},
			Advance:  g.advance,
			Note:     strings.ToLower(runenames.Name(r)),
		}
		out.Commit(g.path, false)
		doc.Glyphs = append(doc.Glyphs, out)
	}
	return doc, nil
}

// Runes returns the distinct characters of s after NFC normalization,
// in first-seen order. Control characters are dropped.
func Runes(s string) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range norm.NFC.String(s) {
		if seen[r] || unicode.IsControl(r) {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// GlyphName returns a production glyph name for r: the character itself
// for ASCII letters, uniXXXX inside the Basic Multilingual Plane and
// uXXXXX beyond it.
func GlyphName(r rune) string {
	switch {
	case r < 0x80 && unicode.IsLetter(r):
		return string(r)
	case r <= 0xFFFF:
		return fmt.Sprintf("uni%04X", r)
	default:
		return fmt.Sprintf("u%05X", r)
	}
}

// pathSink collects font outline segments into closed contours.
type pathSink struct {
	b       *outliner.PathBuilder
	started bool
}

func newPathSink() *pathSink {
	return &pathSink{b: outliner.BuildPath()}
}

func (s *pathSink) moveTo(x, y float64) {
	if s.started {
		s.b.Close()
	}
	s.b.MoveTo(x, y)
	s.started = true
}

func (s *pathSink) lineTo(x, y float64) { s.b.LineTo(x, y) }

func (s *pathSink) quadTo(cx, cy, x, y float64) { s.b.QuadTo(cx, cy, x, y) }

func (s *pathSink) cubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.b.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

// path closes the last contour; font contours are always closed.
func (s *pathSink) path() *outliner.Path {
	if s.started {
		s.b.Close()
	}
	return s.b.Path()
}
