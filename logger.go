package outliner

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger so SetLogger may race with logging
// from batch workers.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for outliner and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by outliner:
//   - [slog.LevelDebug]: per-glyph diagnostics (component cache hits, subdivision depth)
//   - [slog.LevelInfo]: batch lifecycle (glyph count, workers)
//   - [slog.LevelWarn]: skipped input (missing base glyphs, component cycles)
//
// Example:
//
//	outliner.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Host packages (glyphset, fontimport)
// call it to share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
