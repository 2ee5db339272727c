package glyphset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for file extensions without a codec.
var ErrUnknownFormat = errors.New("glyphset: unknown file format")

// Format selects a document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatTOML
	FormatCBOR
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".cbor":
		return FormatCBOR, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	if cborEnc, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	// Nested lib maps decode with string keys, as in the text formats.
	dec := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}
	if cborDec, err = dec.DecMode(); err != nil {
		panic(err)
	}
}

// Load reads and validates a glyph set file.
func Load(path string) (*Font, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyphset: %w", err)
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("glyphset: %s: %w", path, err)
	}
	if err := Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Save writes f to path in the format its extension names. The file is
// written to a temporary sibling first and renamed into place.
func Save(path string, f *Font) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, format); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("glyphset: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("glyphset: %w", err)
	}
	return nil
}

// Decode parses a document. It does not validate.
func Decode(data []byte, format Format) (*Font, error) {
	f := &Font{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, f)
	case FormatJSON:
		err = json.Unmarshal(data, f)
	case FormatTOML:
		err = toml.Unmarshal(data, f)
	case FormatCBOR:
		err = cborDec.Unmarshal(data, f)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %v: %w", format, err)
	}
	return f, nil
}

// Encode writes f to w.
func Encode(w io.Writer, f *Font, format Format) error {
	var err error
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(f); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(f)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(f)
	case FormatCBOR:
		err = cborEnc.NewEncoder(w).Encode(f)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("glyphset: encode %v: %w", format, err)
	}
	return nil
}
