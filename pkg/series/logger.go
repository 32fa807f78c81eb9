package series

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record; Enabled returns false so formatting is
// skipped entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures logging for chart layout. By default nothing is
// logged. Pass nil to restore silence. Safe for concurrent use.
//
// Levels used:
//   - [slog.LevelDebug]: per-pass layout statistics
//   - [slog.LevelWarn]: series skipped because of unusable axes
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger in use. Other chart packages share it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
