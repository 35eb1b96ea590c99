package middleware

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fxsml/siggn"
)

// Outcome classifies a finished publish.
type Outcome string

const (
	// OutcomeDelivered means the message reached the listeners.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeDropped means a later middleware short-circuited the chain.
	OutcomeDropped Outcome = "dropped"
	// OutcomeFailed means the chain returned an error.
	OutcomeFailed Outcome = "failed"
)

// Metrics holds measurements of a single publish.
type Metrics struct {
	Type      string
	Start     time.Time
	Duration  time.Duration
	InFlight  int
	Delivered bool
	Listeners int

	Metadata Metadata

	Error error
}

// Outcome classifies the publish. A failure wins over a delivery, since
// listener panics are reported after the message reached the listeners.
func (m *Metrics) Outcome() Outcome {
	switch {
	case m.Error != nil:
		return OutcomeFailed
	case m.Delivered:
		return OutcomeDelivered
	default:
		return OutcomeDropped
	}
}

// MetricsCollector defines a function that collects the metrics of a publish.
type MetricsCollector func(metrics *Metrics)

// MetricsMiddleware measures every publish passing through it and hands the
// result to collect once the rest of the chain returned.
func MetricsMiddleware[M siggn.Message](collect MetricsCollector) siggn.Middleware[M] {
	var inFlight atomic.Int32
	return func(ctx context.Context, msg M, next siggn.Next) error {
		ctx, delivery := siggn.TrackDelivery(ctx)
		m := &Metrics{
			Type:     msg.Type(),
			Start:    time.Now(),
			InFlight: int(inFlight.Add(1)),
		}

		err := next(ctx)

		m.Duration = time.Since(m.Start)
		inFlight.Add(-1)
		m.Delivered = delivery.Delivered()
		m.Listeners = delivery.Listeners()
		m.Metadata = MetadataFromContext(ctx)
		m.Error = err

		collect(m)

		return err
	}
}

// DistributeMetrics creates a collector that distributes metrics to multiple collectors.
func DistributeMetrics(collectors ...MetricsCollector) MetricsCollector {
	return func(m *Metrics) {
		for _, c := range collectors {
			c(m)
		}
	}
}
