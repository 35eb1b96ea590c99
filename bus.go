package siggn

import (
	"context"
	"errors"
	"runtime/debug"
	"slices"
	"sync"
)

// Message is the constraint for everything published on a Bus. Type returns
// the discriminator that selects the listeners a message is delivered to.
//
// Integrators usually declare a sealed interface embedding Message and
// implement it with value-receiver structs, one per variant.
type Message interface {
	Type() string
}

// Listener receives a delivered message. The context is the one produced by
// the middleware chain.
type Listener[M Message] func(ctx context.Context, msg M)

// SubscribeFunc registers a listener for a discriminator under an identity
// that was bound beforehand. See [Bus.SubscribeMany] and [Scope].
type SubscribeFunc[M Message] func(typ string, fn Listener[M])

// Bus is an in-process publish/subscribe bus for the message contract M.
//
// Listeners are registered under a subscriber identity and removed together
// by that identity. Every publish runs through the middleware chain and ends
// in a synchronous delivery: global listeners first, then listeners of the
// message's discriminator, each group in registration order.
//
// A Bus is safe for concurrent use. No lock is held while middleware or
// listeners run, so they may subscribe, unsubscribe or publish themselves.
type Bus[M Message] struct {
	cfg Config
	ids *idAllocator

	mu           sync.RWMutex
	registry     *registry[M]
	interceptors []*interceptor[M]
}

// New creates an empty Bus.
func New[M Message](cfg Config) *Bus[M] {
	cfg = cfg.parse()
	return &Bus[M]{
		cfg:      cfg,
		ids:      &idAllocator{prefix: cfg.IDPrefix},
		registry: newRegistry[M](),
	}
}

// Name returns the configured bus name.
func (b *Bus[M]) Name() string {
	return b.cfg.Name
}

// MakeID returns explicit unchanged when it is non-empty, otherwise a fresh
// identity distinct from every identity this bus generated before.
func (b *Bus[M]) MakeID(explicit string) string {
	return b.ids.allocate(explicit)
}

// Subscribe registers fn for messages whose Type is typ.
// The same identity may register any number of listeners.
func (b *Bus[M]) Subscribe(id, typ string, fn Listener[M]) {
	b.mu.Lock()
	b.registry.subscribe(id, typ, fn)
	b.mu.Unlock()
}

// SubscribeAll registers fn for every message published on the bus.
func (b *Bus[M]) SubscribeAll(id string, fn Listener[M]) {
	b.mu.Lock()
	b.registry.subscribeAll(id, fn)
	b.mu.Unlock()
}

// SubscribeMany calls setup with a SubscribeFunc bound to id, so several
// listeners can be registered under one identity.
func (b *Bus[M]) SubscribeMany(id string, setup func(subscribe SubscribeFunc[M])) {
	setup(func(typ string, fn Listener[M]) {
		b.Subscribe(id, typ, fn)
	})
}

// Unsubscribe removes every registration owned by id, typed and global.
// Unknown identities are ignored.
func (b *Bus[M]) Unsubscribe(id string) {
	b.mu.Lock()
	typed := b.registry.remove(id)
	global := b.registry.removeGlobal(id)
	b.mu.Unlock()

	if typed || global {
		b.cfg.Logger.Debug("SIGGN: Unsubscribed", "bus", b.cfg.Name, "id", id)
	}
}

// UnsubscribeGlobal removes only the global registrations owned by id.
// Typed registrations under the same identity stay in place.
func (b *Bus[M]) UnsubscribeGlobal(id string) {
	b.mu.Lock()
	removed := b.registry.removeGlobal(id)
	b.mu.Unlock()

	if removed {
		b.cfg.Logger.Debug("SIGGN: Unsubscribed global", "bus", b.cfg.Name, "id", id)
	}
}

// Subscribed reports whether id owns at least one registration.
func (b *Bus[M]) Subscribed(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.registry.has(id)
}

// Len returns the number of typed and global registrations.
func (b *Bus[M]) Len() (typed, global int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.registry.counts()
}

// Use appends mw to the middleware chain and returns a function that removes
// it again. Calling the returned function more than once is a no-op.
//
// The chain is captured when a publish starts; changes made while a publish
// is in flight apply to later publishes only.
func (b *Bus[M]) Use(mw Middleware[M]) (dispose func()) {
	ic := &interceptor[M]{mw: mw}

	b.mu.Lock()
	b.interceptors = append(b.interceptors, ic)
	n := len(b.interceptors)
	b.mu.Unlock()

	b.cfg.Logger.Debug("SIGGN: Middleware added", "bus", b.cfg.Name, "middleware", n)

	return func() {
		b.mu.Lock()
		i := slices.Index(b.interceptors, ic)
		if i >= 0 {
			b.interceptors = slices.Delete(slices.Clone(b.interceptors), i, i+1)
		}
		b.mu.Unlock()

		if i >= 0 {
			b.cfg.Logger.Debug("SIGGN: Middleware removed", "bus", b.cfg.Name, "position", i)
		}
	}
}

// Publish runs msg through the middleware chain and delivers it to the
// matching listeners. It returns once delivery finished or a middleware
// dropped the message.
//
// Middleware errors are returned unchanged. Unless [Config.DisableRecover] is
// set, a panicking listener does not stop delivery to the others; its panic
// is logged and returned as a [*ListenerPanicError], joined with any others.
func (b *Bus[M]) Publish(ctx context.Context, msg M) error {
	if d, _ := ctx.Value(deliveryKey{}).(*Delivery); d != nil {
		// Trackers of an enclosing publish only see their own chain.
		ctx = context.WithValue(ctx, deliveryKey{}, (*Delivery)(nil))
	}

	b.mu.RLock()
	interceptors := slices.Clip(b.interceptors)
	b.mu.RUnlock()

	return chain(ctx, msg, interceptors, b.dispatch)
}

func (b *Bus[M]) dispatch(ctx context.Context, msg M) error {
	typ := msg.Type()

	b.mu.RLock()
	global, typed := b.registry.snapshot(typ)
	b.mu.RUnlock()

	markDelivered(ctx, len(global)+len(typed))

	var errs []error
	for _, regs := range [2][]registration[M]{global, typed} {
		for _, reg := range regs {
			if err := b.invoke(ctx, typ, reg, msg); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (b *Bus[M]) invoke(ctx context.Context, typ string, reg registration[M], msg M) (err error) {
	if b.cfg.DisableRecover {
		reg.fn(ctx, msg)
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			perr := &ListenerPanicError{
				ID:         reg.id,
				Type:       typ,
				PanicValue: r,
				StackTrace: string(debug.Stack()),
			}
			b.cfg.Logger.Error("SIGGN: Listener panicked",
				"bus", b.cfg.Name, "id", reg.id, "type", typ, "error", perr)
			err = perr
		}
	}()
	reg.fn(ctx, msg)
	return nil
}
