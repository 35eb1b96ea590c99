// Package middleware provides stock interceptors for a [siggn.Bus].
//
// Every constructor is generic over the bus contract and returns a
// [siggn.Middleware] to pass to [siggn.Bus.Use]:
//
//	bus.Use(middleware.Recover[CounterMsg]())
//	bus.Use(middleware.Correlation[CounterMsg]())
//	bus.Use(middleware.Log[CounterMsg](logger, middleware.LogConfig{}))
//
// Middleware runs in registration order, so interceptors that observe the
// outcome of a publish (Log, MetricsMiddleware, Tracing) should be added
// before the ones that may drop it (Filter, Throttle, Dedupe, Validate).
package middleware
