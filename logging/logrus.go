package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/fxsml/siggn"
)

type logrusLogger struct {
	l logrus.FieldLogger
}

// Logrus returns a siggn.Logger writing to l, which may be a *logrus.Logger
// or a *logrus.Entry.
func Logrus(l logrus.FieldLogger) siggn.Logger {
	return logrusLogger{l: l}
}

func (r logrusLogger) Debug(msg string, args ...any) { r.entry(args).Debug(msg) }
func (r logrusLogger) Info(msg string, args ...any)  { r.entry(args).Info(msg) }
func (r logrusLogger) Warn(msg string, args ...any)  { r.entry(args).Warn(msg) }
func (r logrusLogger) Error(msg string, args ...any) { r.entry(args).Error(msg) }

func (r logrusLogger) entry(args []any) logrus.FieldLogger {
	fs := fields(args)
	if len(fs) == 0 {
		return r.l
	}
	lf := make(logrus.Fields, len(fs))
	for _, f := range fs {
		lf[f.key] = f.val
	}
	return r.l.WithFields(lf)
}
