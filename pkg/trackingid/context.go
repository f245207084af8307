package trackingid

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithContext stores a tracking id in the context.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext retrieves the tracking id from the context.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// LoggerExtractor returns a slog attribute extractor for the tracking id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := FromContext(ctx); ok {
			return slog.String("tracking_id", id), true
		}
		return slog.Attr{}, false
	}
}
