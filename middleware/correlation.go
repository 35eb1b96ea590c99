package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/fxsml/siggn"
)

// MetadataCorrelationID is the metadata key under which the correlation ID
// is logged.
const MetadataCorrelationID = "correlation_id"

// Correlated is implemented by messages that carry their own correlation ID.
type Correlated interface {
	CorrelationID() string
}

type correlationKey struct{}

// ContextWithCorrelationID stores id in ctx and in its metadata.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, correlationKey{}, id)
	return ContextWithMetadata(ctx, Metadata{MetadataCorrelationID: id})
}

// CorrelationIDFromContext returns the correlation ID carried by ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// Correlation makes sure the rest of the chain and the listeners see a
// correlation ID. An ID already on the context is kept; otherwise the
// message's own ID is used when it implements Correlated, and a new UUID
// when it does not. Publishes made by listeners with the delivered context
// therefore share the ID of the publish that caused them.
func Correlation[M siggn.Message]() siggn.Middleware[M] {
	return func(ctx context.Context, msg M, next siggn.Next) error {
		if CorrelationIDFromContext(ctx) != "" {
			return next(ctx)
		}
		var id string
		if c, ok := any(msg).(Correlated); ok {
			id = c.CorrelationID()
		}
		if id == "" {
			id = uuid.NewString()
		}
		return next(ContextWithCorrelationID(ctx, id))
	}
}
