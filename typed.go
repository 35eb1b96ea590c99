package siggn

import "context"

// TypeOf returns the discriminator of the variant V, read from its zero value.
// Variants must therefore answer Type without depending on their fields.
func TypeOf[V Message]() string {
	var zero V
	return zero.Type()
}

// Typed adapts a listener for the single variant V to a Listener of the whole
// contract M and returns it together with the discriminator of V:
//
//	scope.Subscribe(siggn.Typed[Increment, CounterMsg](func(ctx context.Context, msg Increment) {
//		count += msg.Value
//	}))
//
// Messages that carry the discriminator of V but are not a V are ignored.
func Typed[V, M Message](fn func(ctx context.Context, msg V)) (string, Listener[M]) {
	return TypeOf[V](), func(ctx context.Context, msg M) {
		if v, ok := any(msg).(V); ok {
			fn(ctx, v)
		}
	}
}

// On registers fn under id for the variant V of the bus contract.
func On[V, M Message](b *Bus[M], id string, fn func(ctx context.Context, msg V)) {
	typ, l := Typed[V, M](fn)
	b.Subscribe(id, typ, l)
}
