package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/fxsml/siggn"
)

// RecoveryError wraps a panic value with the stack trace.
// This allows panics to be converted to regular errors and handled gracefully.
type RecoveryError struct {
	// Type is the discriminator of the message being published.
	Type string
	// PanicValue is the original value that was passed to panic().
	PanicValue any
	// StackTrace contains the full stack trace at the point of panic.
	StackTrace string
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("panic recovered: %v", e.PanicValue)
}

// Recover catches panics raised by the rest of the chain, including
// listeners on a bus with recovery disabled, and returns them as a
// RecoveryError.
func Recover[M siggn.Message]() siggn.Middleware[M] {
	return func(ctx context.Context, msg M, next siggn.Next) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &RecoveryError{
					Type:       msg.Type(),
					PanicValue: r,
					StackTrace: string(debug.Stack()),
				}
			}
		}()
		return next(ctx)
	}
}
