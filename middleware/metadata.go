package middleware

import (
	"context"
	"maps"

	"github.com/fxsml/gostep"
)

// Metadata is a key-value store for additional information about a call.
type Metadata map[string]any

// MetadataFromContext extracts metadata from a context.
// Returns nil if no metadata is present.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return nil
	}
	if metadata, ok := ctx.Value(metadataKey).(Metadata); ok {
		return metadata
	}
	return nil
}

// Args converts metadata to a flat key-value slice for logging.
func (m Metadata) Args() []any {
	args := make([]any, 0, len(m)*2)
	for k, v := range m {
		args = append(args, k, v)
	}
	return args
}

type metadataKeyType struct{}

var metadataKey = metadataKeyType{}

// MetadataProvider attaches metadata produced by provider to the context
// passed downstream. Metadata already present in the context is copied and
// merged; the caller's map is never modified.
func MetadataProvider[I, E, O any](provider func(in I, extra E) Metadata) Middleware[I, E, O] {
	return func(next gostep.Step[I, E, O]) gostep.Step[I, E, O] {
		return gostep.StepFunc[I, E, O](func(ctx context.Context, in I, extra E) (O, error) {
			return next.Perform(WithMetadata(ctx, provider(in, extra)), in, extra)
		})
	}
}

// WithMetadata returns a copy of ctx carrying m merged over any metadata
// already present.
func WithMetadata(ctx context.Context, m Metadata) context.Context {
	metadata := Metadata{}
	maps.Copy(metadata, MetadataFromContext(ctx))
	maps.Copy(metadata, m)
	return context.WithValue(ctx, metadataKey, metadata)
}
