package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fxsml/siggn"
)

const tracerName = "github.com/fxsml/siggn/middleware"

// Span attribute keys set by Tracing.
const (
	AttrMessageType = attribute.Key("siggn.message.type")
	AttrBus         = attribute.Key("siggn.bus")
	AttrDropped     = attribute.Key("siggn.dropped")
	AttrListeners   = attribute.Key("siggn.listeners")
)

// TracingConfig configures the tracing middleware.
type TracingConfig struct {
	// Bus is recorded as span attribute siggn.bus when set.
	Bus string `yaml:"bus"`
	// TracerProvider defaults to otel.GetTracerProvider().
	TracerProvider trace.TracerProvider `yaml:"-"`
}

// Tracing wraps the rest of the chain in a span named
// "siggn.publish <type>". Listeners receive the span in their context.
func Tracing[M siggn.Message](cfg TracingConfig) siggn.Middleware[M] {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(tracerName)

	return func(ctx context.Context, msg M, next siggn.Next) error {
		attrs := []attribute.KeyValue{AttrMessageType.String(msg.Type())}
		if cfg.Bus != "" {
			attrs = append(attrs, AttrBus.String(cfg.Bus))
		}
		ctx, span := tracer.Start(ctx, "siggn.publish "+msg.Type(),
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		ctx, delivery := siggn.TrackDelivery(ctx)
		err := next(ctx)

		span.SetAttributes(
			AttrDropped.Bool(err == nil && !delivery.Delivered()),
			AttrListeners.Int(delivery.Listeners()),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
