package middleware

import (
	"strings"

	"github.com/fxsml/siggn"
)

// LogLevel represents the severity level for logging messages.
type LogLevel string

const (
	// LogLevelDebug is used for detailed information.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is used for general information messages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is used for warning conditions.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is used for error conditions.
	LogLevelError LogLevel = "error"
)

// LogConfig holds configuration for the logger middleware.
// Fields left empty fall back to the defaults documented on each field.
type LogConfig struct {
	// Args are additional arguments to include in all log messages.
	Args []any `yaml:"-"`

	// LevelDelivered is the log level used for delivered messages.
	// Defaults to LogLevelDebug.
	LevelDelivered LogLevel `yaml:"level_delivered"`
	// LevelDropped is the log level used for dropped messages.
	// Defaults to LogLevelInfo.
	LevelDropped LogLevel `yaml:"level_dropped"`
	// LevelFailed is the log level used when publishing fails.
	// Defaults to LogLevelError.
	LevelFailed LogLevel `yaml:"level_failed"`

	// MessageDelivered defaults to "SIGGN: Delivered".
	MessageDelivered string `yaml:"message_delivered"`
	// MessageDropped defaults to "SIGGN: Dropped".
	MessageDropped string `yaml:"message_dropped"`
	// MessageFailed defaults to "SIGGN: Failed".
	MessageFailed string `yaml:"message_failed"`

	// Disabled disables all logging when set to true.
	Disabled bool `yaml:"disabled"`
}

func parseLogLevel(level LogLevel, def LogLevel) LogLevel {
	level = LogLevel(strings.ToLower(strings.TrimSpace(string(level))))
	if level == "" {
		return def
	}
	return level
}

func (c LogConfig) parse() LogConfig {
	c.LevelDelivered = parseLogLevel(c.LevelDelivered, LogLevelDebug)
	c.LevelDropped = parseLogLevel(c.LevelDropped, LogLevelInfo)
	c.LevelFailed = parseLogLevel(c.LevelFailed, LogLevelError)
	if c.MessageDelivered == "" {
		c.MessageDelivered = "SIGGN: Delivered"
	}
	if c.MessageDropped == "" {
		c.MessageDropped = "SIGGN: Dropped"
	}
	if c.MessageFailed == "" {
		c.MessageFailed = "SIGGN: Failed"
	}
	return c
}

func logFunc(level LogLevel, log siggn.Logger) func(msg string, args ...any) {
	switch level {
	case LogLevelDebug:
		return log.Debug
	case LogLevelWarn:
		return log.Warn
	case LogLevelError:
		return log.Error
	default:
		return log.Info
	}
}

func appendArgs(args ...[]any) []any {
	l := 0
	for _, a := range args {
		l += len(a)
	}
	result := make([]any, 0, l)
	for _, a := range args {
		result = append(result, a...)
	}
	return result
}

// NewMetricsLogger returns a collector that logs every publish outcome.
// A nil logger uses siggn.DefaultLogger().
func NewMetricsLogger(log siggn.Logger, config LogConfig) MetricsCollector {
	if config.Disabled {
		return func(*Metrics) {}
	}
	if log == nil {
		log = siggn.DefaultLogger()
	}
	config = config.parse()
	logDelivered := logFunc(config.LevelDelivered, log)
	logDropped := logFunc(config.LevelDropped, log)
	logFailed := logFunc(config.LevelFailed, log)
	return func(m *Metrics) {
		base := []any{"type", m.Type, "duration", m.Duration}
		switch m.Outcome() {
		case OutcomeDelivered:
			logDelivered(config.MessageDelivered,
				appendArgs(config.Args, m.Metadata.Args(), base, []any{"listeners", m.Listeners})...)
		case OutcomeDropped:
			logDropped(config.MessageDropped,
				appendArgs(config.Args, m.Metadata.Args(), base)...)
		default:
			logFailed(config.MessageFailed,
				appendArgs(config.Args, m.Metadata.Args(), base, []any{"error", m.Error})...)
		}
	}
}

// Log logs the outcome of every publish: delivered, dropped by a later
// middleware, or failed.
func Log[M siggn.Message](log siggn.Logger, config LogConfig) siggn.Middleware[M] {
	return MetricsMiddleware[M](NewMetricsLogger(log, config))
}
