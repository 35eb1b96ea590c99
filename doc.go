// Package siggn provides an in-process, strongly-typed publish/subscribe bus.
//
// Components register interest in message variants under a subscriber
// identity, and a publisher delivers messages to every matching listener.
// The bus is a pure in-memory fan-out: there is no persistence, no replay and
// no delivery across processes.
//
// # Quick Start
//
//	type CounterMsg interface {
//		siggn.Message
//		counter()
//	}
//
//	type Increment struct{ Value int }
//
//	func (Increment) Type() string { return "increment_count" }
//	func (Increment) counter()     {}
//
//	bus := siggn.New[CounterMsg](siggn.Config{Name: "counter"})
//
//	siggn.On(bus, "1", func(ctx context.Context, msg Increment) {
//		count += msg.Value
//	})
//	_ = bus.Publish(ctx, Increment{Value: 4})
//	bus.Unsubscribe("1")
//
// # Delivery
//
// Publish runs the middleware chain registered with [Bus.Use] and then
// delivers synchronously on the publishing goroutine: global listeners
// ([Bus.SubscribeAll]) first, then listeners of the message's discriminator,
// each group in registration order. A middleware that never calls next drops
// the message without error.
//
// # Identities
//
// Every registration is owned by a subscriber identity. [Bus.Unsubscribe]
// removes all registrations of an identity, [Bus.UnsubscribeGlobal] only its
// global ones. [Bus.MakeID] generates identities unique per bus, and
// [Bus.Make] returns a [Scope] with the identity filled in.
//
// # Subpackages
//
// middleware: Stock interceptors (recover, logging, metrics, tracing,
// correlation IDs, throttling, deduplication, validation)
//
// logging: Logger adapters for zerolog and logrus
//
// config: Environment and YAML loading for configuration structs
package siggn
