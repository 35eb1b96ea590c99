package middleware

import (
	"context"

	"github.com/fxsml/siggn"
)

// Filter drops messages for which keep returns false.
func Filter[M siggn.Message](keep func(msg M) bool) siggn.Middleware[M] {
	return func(ctx context.Context, msg M, next siggn.Next) error {
		if !keep(msg) {
			return nil
		}
		return next(ctx)
	}
}

// DropTypes drops messages whose discriminator is one of types.
func DropTypes[M siggn.Message](types ...string) siggn.Middleware[M] {
	drop := make(map[string]struct{}, len(types))
	for _, t := range types {
		drop[t] = struct{}{}
	}
	return Filter(func(msg M) bool {
		_, ok := drop[msg.Type()]
		return !ok
	})
}
