package epf

import "context"
import "log/slog"
import "sync/atomic"

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely,
// making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	loggerPtr.Store(l)
}

// SetLogger configures the logger used by this package. By default no
// output is produced. Pass nil to restore the default silent behavior.
//
// The package logs at [slog.LevelDebug] only: per-line refresh regions
// submitted to the display and lines skipped for having empty bounds.
//
// SetLogger is safe for concurrent use; it stores the logger atomically.
func SetLogger(l *slog.Logger) {
	if l == nil { l = slog.New(nopHandler{}) }
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
