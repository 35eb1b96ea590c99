package middleware

import (
	"context"
	"maps"

	"github.com/fxsml/siggn"
)

// Metadata is a key-value store of additional information about a publish.
type Metadata map[string]any

// Args converts the metadata map into a slice of alternating keys and values,
// suitable for use with structured logging systems like slog.
func (m Metadata) Args() []any {
	args := make([]any, 0, len(m)*2)
	for k, v := range m {
		args = append(args, k, v)
	}
	return args
}

type metadataKey struct{}

// ContextWithMetadata returns a context carrying the metadata already on ctx
// merged with md. Keys in md win. The maps on ctx are never modified.
func ContextWithMetadata(ctx context.Context, md Metadata) context.Context {
	merged := Metadata{}
	maps.Copy(merged, MetadataFromContext(ctx))
	maps.Copy(merged, md)
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns the metadata carried by ctx, or nil.
// The result must not be modified.
func MetadataFromContext(ctx context.Context) Metadata {
	md, _ := ctx.Value(metadataKey{}).(Metadata)
	return md
}

// WithMetadata attaches the metadata produced by provide to the context of
// the rest of the chain. Log and MetricsMiddleware include it in their
// output.
func WithMetadata[M siggn.Message](provide func(msg M) Metadata) siggn.Middleware[M] {
	return func(ctx context.Context, msg M, next siggn.Next) error {
		if md := provide(msg); len(md) > 0 {
			ctx = ContextWithMetadata(ctx, md)
		}
		return next(ctx)
	}
}
