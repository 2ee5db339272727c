package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/outliner"
	"github.com/gogpu/outliner/glyphset"
)

func square(name string) glyphset.Glyph {
	pt := func(x, y float64) glyphset.Point { return glyphset.Point{X: x, Y: y, Type: glyphset.PointLine} }
	return glyphset.Glyph{
		Name:     name,
		Advance:  500,
		Contours: []glyphset.Contour{{Points: []glyphset.Point{pt(0, 0), pt(0, 100), pt(100, 100), pt(100, 0)}}},
	}
}

// writeFont saves a glyph set with a square A and a B made of two A
// components, returning its path.
func writeFont(t *testing.T) string {
	t.Helper()
	font := &glyphset.Font{
		Name:       "Test Sans",
		UnitsPerEm: 1000,
		Glyphs: []glyphset.Glyph{
			square("A"),
			{Name: "B", Components: []glyphset.Component{
				{Base: "A"},
				{Base: "A", Transform: []float64{1, 0, 0, 1, 200, 0}},
			}},
		},
	}
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, glyphset.Save(path, font))
	return path
}

func runCmd(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func glyphBounds(t *testing.T, g *glyphset.Glyph) outliner.Rect {
	t.Helper()
	require.NotNil(t, g)
	p, err := g.ToPath()
	require.NoError(t, err)
	b, ok := p.Bounds()
	require.True(t, ok)
	return b
}

func assertRect(t *testing.T, want, got outliner.Rect) {
	t.Helper()
	assert.InDelta(t, want.Min.X, got.Min.X, 1e-6)
	assert.InDelta(t, want.Min.Y, got.Min.Y, 1e-6)
	assert.InDelta(t, want.Max.X, got.Max.X, 1e-6)
	assert.InDelta(t, want.Max.Y, got.Max.Y, 1e-6)
}

// syncBuffer is a bytes.Buffer shared between the test and a running command.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCmd(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "expand")

	code, _, stderr = runCmd(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown command")

	code, _, _ = runCmd(t, "expand")
	assert.Equal(t, 2, code, "missing file argument")
}

func TestExpand_InPlace(t *testing.T) {
	path := writeFont(t)
	code, stdout, stderr := runCmd(t, "expand", "-thickness", "10", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "outlined 2 glyphs")

	font, err := glyphset.Load(path)
	require.NoError(t, err)
	a := font.Glyph("A")
	assert.Len(t, a.Contours, 2)
	b := font.Glyph("B")
	assert.Len(t, b.Contours, 4)
	assert.Empty(t, b.Components)
	assertRect(t, outliner.NewRect(outliner.Pt(-10, -10), outliner.Pt(310, 110)), glyphBounds(t, b))
}

func TestExpand_LayerPreserveComponents(t *testing.T) {
	path := writeFont(t)
	out := filepath.Join(filepath.Dir(path), "out.json")
	code, stdout, stderr := runCmd(t, "expand",
		"-preserve-components", "-layer", "outlined", "-round", "-o", out, path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "1 component bases")

	font, err := glyphset.Load(out)
	require.NoError(t, err)
	assert.Len(t, font.Glyph("A").Contours, 1, "source glyph untouched")
	layer := font.Layer("outlined", false)
	require.NotNil(t, layer)
	assert.Len(t, layer.Glyphs, 2)
	assert.Len(t, layer.Glyph("B").Contours, 4)
}

func TestExpand_MissingGlyph(t *testing.T) {
	path := writeFont(t)
	code, _, stderr := runCmd(t, "expand", path, "A", "Z")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "glyph not found")
}

func TestExpand_BadOption(t *testing.T) {
	path := writeFont(t)
	code, _, stderr := runCmd(t, "expand", "-join", "wobbly", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown join style")
}

func TestExpand_ConfigFile(t *testing.T) {
	path := writeFont(t)
	cfg := filepath.Join(filepath.Dir(path), "outliner.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[outline]\nthickness = 5\n"), 0o600))

	code, _, stderr := runCmd(t, "expand", "-config", cfg, path, "A")
	require.Equal(t, 0, code, stderr)
	font, err := glyphset.Load(path)
	require.NoError(t, err)
	assertRect(t, outliner.NewRect(outliner.Pt(-5, -5), outliner.Pt(105, 105)), glyphBounds(t, font.Glyph("A")))
}

func TestSettings_LibRoundTrip(t *testing.T) {
	path := writeFont(t)
	code, stdout, stderr := runCmd(t, "settings", "save", "-thickness", "20", "-join", "round", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "saved settings for Test Sans")

	code, stdout, stderr = runCmd(t, "settings", "load", path)
	require.Equal(t, 0, code, stderr)
	assert.Regexp(t, `thickness\s+20`, stdout)
	assert.Regexp(t, `corner\s+Round`, stdout)

	// Expanding from saved settings uses thickness 20.
	code, _, stderr = runCmd(t, "expand", "-saved", "-join", "square", path, "A")
	require.Equal(t, 0, code, stderr)
	font, err := glyphset.Load(path)
	require.NoError(t, err)
	assertRect(t, outliner.NewRect(outliner.Pt(-20, -20), outliner.Pt(120, 120)), glyphBounds(t, font.Glyph("A")))

	code, _, stderr = runCmd(t, "settings", "clear", path)
	require.Equal(t, 0, code, stderr)
	code, _, stderr = runCmd(t, "settings", "load", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no saved settings")
}

func TestSettings_Database(t *testing.T) {
	path := writeFont(t)
	db := filepath.Join(t.TempDir(), "settings.db")
	code, _, stderr := runCmd(t, "settings", "save", "-store", "db", "-db", db, "-contrast", "15", path)
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := runCmd(t, "settings", "load", "-store", "db", "-db", db, path)
	require.Equal(t, 0, code, stderr)
	assert.Regexp(t, `contrast\s+15`, stdout)

	font, err := glyphset.Load(path)
	require.NoError(t, err)
	assert.Empty(t, font.Lib, "database store leaves the file alone")

	code, _, _ = runCmd(t, "settings", "wipe", path)
	assert.Equal(t, 2, code)
}

func TestPreview(t *testing.T) {
	path := writeFont(t)
	out := filepath.Join(t.TempDir(), "B.png")
	code, _, stderr := runCmd(t, "preview", "-size", "64", "-o", out, path, "B")
	require.Equal(t, 0, code, stderr)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	code, _, stderr = runCmd(t, "preview", "-o", out, path, "Z")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "glyph not found")
}

func TestProof(t *testing.T) {
	path := writeFont(t)
	out := filepath.Join(t.TempDir(), "proof.pdf")
	code, stdout, stderr := runCmd(t, "proof", "-columns", "2", "-o", out, path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "wrote 2 glyphs")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	ttf := filepath.Join(dir, "GoRegular.ttf")
	require.NoError(t, os.WriteFile(ttf, goregular.TTF, 0o600))
	out := filepath.Join(dir, "go.yaml")

	code, stdout, stderr := runCmd(t, "import", "-chars", "AB", "-backend", "sfnt", "-o", out, ttf)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "imported 2 glyphs")

	font, err := glyphset.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 2048, font.UnitsPerEm)
	require.NotNil(t, font.Glyph("A"))

	// The imported set expands like any other.
	code, _, stderr = runCmd(t, "expand", "-thickness", "40", out)
	require.Equal(t, 0, code, stderr)
}

func TestWatch(t *testing.T) {
	path := writeFont(t)
	out := filepath.Join(t.TempDir(), "watched.yaml")

	code, _, _ := runCmd(t, "watch", "-o", path, path)
	assert.Equal(t, 1, code, "output must differ from input")

	ctx, cancel := context.WithCancel(context.Background())
	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() { done <- run(ctx, []string{"watch", "-thickness", "10", "-o", out, path}, &stdout, &stderr) }()

	waitFor(t, func() bool {
		font, err := glyphset.Load(out)
		return err == nil && len(font.Glyph("A").Contours) == 2
	})

	// Add a second contour to A and wait for it to be outlined.
	font, err := glyphset.Load(path)
	require.NoError(t, err)
	a := font.Glyph("A")
	inner := square("x").Contours[0]
	for i := range inner.Points {
		inner.Points[i].X += 300
	}
	a.Contours = append(a.Contours, inner)
	require.NoError(t, glyphset.Save(path, font))

	waitFor(t, func() bool {
		font, err := glyphset.Load(out)
		return err == nil && len(font.Glyph("A").Contours) == 4
	})

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code, stderr.String())
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.True(t, strings.Count(stdout.String(), "outlined") >= 2)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
