package middleware

import (
	"context"
	"time"

	"github.com/fxsml/siggn"
)

// Timeout bounds the rest of the chain, listeners included, by d.
// The deadline is only visible through the context; listeners and middleware
// that ignore it are not interrupted. Zero or negative d disables the timeout.
func Timeout[M siggn.Message](d time.Duration) siggn.Middleware[M] {
	return func(ctx context.Context, _ M, next siggn.Next) error {
		if d <= 0 {
			return next(ctx)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx)
	}
}
