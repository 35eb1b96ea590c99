package logging

import (
	"github.com/rs/zerolog"

	"github.com/fxsml/siggn"
)

type zerologLogger struct {
	l zerolog.Logger
}

// Zerolog returns a siggn.Logger writing to l.
func Zerolog(l zerolog.Logger) siggn.Logger {
	return zerologLogger{l: l}
}

func (z zerologLogger) Debug(msg string, args ...any) { write(z.l.Debug(), msg, args) }
func (z zerologLogger) Info(msg string, args ...any)  { write(z.l.Info(), msg, args) }
func (z zerologLogger) Warn(msg string, args ...any)  { write(z.l.Warn(), msg, args) }
func (z zerologLogger) Error(msg string, args ...any) { write(z.l.Error(), msg, args) }

func write(e *zerolog.Event, msg string, args []any) {
	// nil when the level is disabled
	if e == nil {
		return
	}
	for _, f := range fields(args) {
		if err, ok := f.val.(error); ok {
			e = e.AnErr(f.key, err)
			continue
		}
		e = e.Interface(f.key, f.val)
	}
	e.Msg(msg)
}
