package applog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	log, closer := New(&buf, Options{Level: "info"})
	defer closer.Close()

	log.Debug("hidden")
	log.With("font", "Demo Sans").WithGroup("opts").Info("expanded", "thickness", 12.5)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF expanded")
	assert.Contains(t, out, `font="Demo Sans"`)
	assert.Contains(t, out, "opts.thickness=12.5")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log, closer := New(&buf, Options{Level: "debug", Format: "json"})
	defer closer.Close()

	log.Debug("component", "glyph", "A")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "component", rec["msg"])
	assert.Equal(t, "A", rec["glyph"])
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outliner.log")
	var buf bytes.Buffer
	log, closer := New(&buf, Options{File: path})
	log.Warn("glyph not found", "glyph", "Z")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"glyph":"Z"`)
	assert.Contains(t, buf.String(), "WRN glyph not found")
}

func TestFromEnvAndMerge(t *testing.T) {
	t.Setenv("OUTLINER_LOG_LEVEL", "debug")
	t.Setenv("OUTLINER_LOG_FORMAT", "")
	t.Setenv("OUTLINER_LOG_FILE", "")

	env := FromEnv()
	assert.Equal(t, Options{Level: "debug", Format: "console"}, env)

	got := Options{Format: "json"}.Merge(env)
	assert.Equal(t, Options{Level: "debug", Format: "json"}, got)
}
