package middleware

import (
	"context"
	"fmt"

	"github.com/fxsml/siggn"
)

// Validator is implemented by messages that can check their own payload.
type Validator interface {
	Validate() error
}

// Validate rejects messages implementing Validator whose Validate fails.
// The returned error wraps ErrInvalidMessage and the cause; nothing is
// delivered.
func Validate[M siggn.Message]() siggn.Middleware[M] {
	return func(ctx context.Context, msg M, next siggn.Next) error {
		if v, ok := any(msg).(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidMessage, msg.Type(), err)
			}
		}
		return next(ctx)
	}
}
