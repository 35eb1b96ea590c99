package siggn

import (
	"context"
	"sync"
)

// Attach binds a Scope to id, generating an identity when id is empty, and
// lets setup register listeners on it. All registrations of that identity
// are removed when ctx is done or when the returned detach function is
// called, whichever happens first. Calling detach again is a no-op.
//
// This is the attach/detach cycle of a component whose lifetime is bounded
// by a context.
func (b *Bus[M]) Attach(ctx context.Context, id string, setup func(s *Scope[M])) (scope *Scope[M], detach func()) {
	scope = b.Make(b.MakeID(id))
	setup(scope)

	var once sync.Once
	unsubscribe := func() { once.Do(scope.Unsubscribe) }
	stop := context.AfterFunc(ctx, unsubscribe)

	return scope, func() {
		stop()
		unsubscribe()
	}
}
