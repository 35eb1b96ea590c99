package siggn

import (
	"log/slog"
	"sync/atomic"
)

// Logger defines an interface for logging at different severity levels.
// Arguments follow the slog convention of alternating keys and values.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, args ...any)
	// Info logs a message at info level.
	Info(msg string, args ...any)
	// Warn logs a message at warning level.
	Warn(msg string, args ...any)
	// Error logs a message at error level.
	Error(msg string, args ...any)
}

type loggerHolder struct{ Logger }

var defaultLogger atomic.Pointer[loggerHolder]

func init() {
	defaultLogger.Store(&loggerHolder{slog.Default()})
}

// SetDefaultLogger sets the logger used by buses created without
// [Config.Logger]. slog.Default() is used by default. A nil logger restores it.
func SetDefaultLogger(l Logger) {
	if l == nil {
		l = slog.Default()
	}
	defaultLogger.Store(&loggerHolder{l})
}

// DefaultLogger returns the logger set by [SetDefaultLogger].
func DefaultLogger() Logger {
	return defaultLogger.Load().Logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}
