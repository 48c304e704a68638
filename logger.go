package avatar

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Decodes log from their own
// goroutines, so access is atomic.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for avatar and the gg renderer underneath
// it. By default nothing is logged. Pass nil to restore silence.
//
// Log levels used by avatar:
//   - [slog.LevelDebug]: frames rendered, stale decodes dropped
//   - [slog.LevelInfo]: selections applied
//   - [slog.LevelWarn]: decode failures (the layer is left out)
//
// Example:
//
//	avatar.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
