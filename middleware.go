package siggn

import (
	"context"
	"sync/atomic"
)

// Next continues the middleware chain. Passing a derived context makes it
// visible to the remaining middleware and to the listeners.
type Next func(ctx context.Context) error

// Middleware intercepts every publish before delivery. It continues the chain
// by calling next, or short-circuits by returning without calling it, in
// which case the message is dropped silently. A middleware may block before
// calling next; Publish returns only after the whole chain has returned.
type Middleware[M Message] func(ctx context.Context, msg M, next Next) error

// interceptor boxes a middleware so its disposer can find this exact
// registration even when the same function is used twice.
type interceptor[M Message] struct {
	mw Middleware[M]
}

// chain runs the interceptors in order and ends with deliver.
func chain[M Message](
	ctx context.Context,
	msg M,
	interceptors []*interceptor[M],
	deliver func(context.Context, M) error,
) error {
	if len(interceptors) == 0 {
		return deliver(ctx, msg)
	}
	var called atomic.Bool
	next := func(ctx context.Context) error {
		if !called.CompareAndSwap(false, true) {
			return ErrNextCalled
		}
		return chain(ctx, msg, interceptors[1:], deliver)
	}
	return interceptors[0].mw(ctx, msg, next)
}
