package siggn_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxsml/siggn"
	"github.com/fxsml/siggn/internal/test"
)

func TestTrackDelivery(t *testing.T) {
	t.Parallel()

	track := func(bus *siggn.Bus[test.CounterMsg]) *[]*siggn.Delivery {
		var got []*siggn.Delivery
		bus.Use(func(ctx context.Context, _ test.CounterMsg, next siggn.Next) error {
			ctx, d := siggn.TrackDelivery(ctx)
			got = append(got, d)
			return next(ctx)
		})
		return &got
	}

	t.Run("reports delivered listeners", func(t *testing.T) {
		bus := newCounterBus(t)
		got := track(bus)
		bus.SubscribeAll("a", func(context.Context, test.CounterMsg) {})
		bus.Subscribe("b", test.TypeIncrement, func(context.Context, test.CounterMsg) {})

		publish[test.CounterMsg](t, bus, test.Increment{Value: 1})

		d := (*got)[0]
		assert.True(t, d.Delivered())
		assert.Equal(t, 2, d.Listeners())
	})

	t.Run("delivery without listeners still counts as delivered", func(t *testing.T) {
		bus := newCounterBus(t)
		got := track(bus)

		publish[test.CounterMsg](t, bus, test.Increment{Value: 1})

		assert.True(t, (*got)[0].Delivered())
		assert.Zero(t, (*got)[0].Listeners())
	})

	t.Run("reports drops by later middleware", func(t *testing.T) {
		bus := newCounterBus(t)
		got := track(bus)
		bus.Use(func(context.Context, test.CounterMsg, siggn.Next) error { return nil })

		publish[test.CounterMsg](t, bus, test.Increment{Value: 1})

		assert.False(t, (*got)[0].Delivered())
	})

	t.Run("nested trackers all see the delivery", func(t *testing.T) {
		bus := newCounterBus(t)
		outer := track(bus)
		inner := track(bus)
		bus.SubscribeAll("a", func(context.Context, test.CounterMsg) {})

		publish[test.CounterMsg](t, bus, test.Increment{Value: 1})

		assert.True(t, (*outer)[0].Delivered())
		assert.True(t, (*inner)[0].Delivered())
		assert.Equal(t, 1, (*outer)[0].Listeners())
	})

	t.Run("publishes from listeners do not report upstream", func(t *testing.T) {
		bus := newCounterBus(t)
		got := track(bus)
		bus.Subscribe("a", test.TypeIncrement, func(ctx context.Context, _ test.CounterMsg) {
			_ = bus.Publish(ctx, test.Decrement{Value: 1})
		})
		bus.Subscribe("b", test.TypeDecrement, func(context.Context, test.CounterMsg) {})

		publish[test.CounterMsg](t, bus, test.Increment{Value: 1})

		assert.Len(t, *got, 2)
		assert.Equal(t, 1, (*got)[0].Listeners())
		assert.Equal(t, 1, (*got)[1].Listeners())
	})

	t.Run("publishes from middleware do not report upstream", func(t *testing.T) {
		bus := newCounterBus(t)
		got := track(bus)
		bus.Use(func(ctx context.Context, msg test.CounterMsg, next siggn.Next) error {
			if msg.Type() != test.TypeIncrement {
				return next(ctx)
			}
			// Replace the increment with a decrement.
			return bus.Publish(ctx, test.Decrement{Value: 1})
		})
		bus.SubscribeAll("a", func(context.Context, test.CounterMsg) {})

		publish[test.CounterMsg](t, bus, test.Increment{Value: 1})

		require.Len(t, *got, 2)
		assert.False(t, (*got)[0].Delivered())
		assert.Zero(t, (*got)[0].Listeners())
		assert.True(t, (*got)[1].Delivered())
		assert.Equal(t, 1, (*got)[1].Listeners())
	})
}
