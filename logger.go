package devlink

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from either side of
// a session.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for devlink and its sub-packages.
// By default, devlink produces no log output. SetLogger is safe for
// concurrent use; pass nil to restore the default silent behavior.
//
// Log levels used by devlink:
//   - [slog.LevelDebug]: session diagnostics (disconnects, drain details)
//   - [slog.LevelInfo]: lifecycle events (session init, device selected)
//   - [slog.LevelWarn]: non-fatal executor issues (shader compile failure)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by devlink. Sub-packages
// (device/wgpu) call this to share the same logger configuration without
// introducing import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// logger is the package-internal shorthand for Logger.
func logger() *slog.Logger {
	return loggerPtr.Load()
}
