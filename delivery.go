package siggn

import (
	"context"
	"sync/atomic"
)

// Delivery reports what happened downstream of the middleware that created
// it with [TrackDelivery].
type Delivery struct {
	parent    *Delivery
	delivered atomic.Bool
	listeners atomic.Int64
}

// Delivered reports whether the chain reached the listeners, i.e. no later
// middleware dropped the message.
func (d *Delivery) Delivered() bool {
	return d.delivered.Load()
}

// Listeners returns the number of listeners the message was handed to.
func (d *Delivery) Listeners() int {
	return int(d.listeners.Load())
}

type deliveryKey struct{}

// TrackDelivery returns a context whose eventual delivery is recorded in the
// returned Delivery. Trackers nest: every tracker on the context chain sees
// the delivery. A new publish started with the returned context, from a
// listener or a middleware, does not report to them.
func TrackDelivery(ctx context.Context) (context.Context, *Delivery) {
	parent, _ := ctx.Value(deliveryKey{}).(*Delivery)
	d := &Delivery{parent: parent}
	return context.WithValue(ctx, deliveryKey{}, d), d
}

func markDelivered(ctx context.Context, listeners int) {
	d, _ := ctx.Value(deliveryKey{}).(*Delivery)
	for ; d != nil; d = d.parent {
		d.delivered.Store(true)
		d.listeners.Add(int64(listeners))
	}
}
