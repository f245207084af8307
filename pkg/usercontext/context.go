package usercontext

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithPrincipal attaches a resolved principal to the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext retrieves the principal from the context.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok && p != nil
}

// MustFromContext retrieves the principal or panics. Use only in handlers
// behind RequirePrincipal.
func MustFromContext(ctx context.Context) *Principal {
	p, ok := FromContext(ctx)
	if !ok {
		panic("usercontext: no principal in context")
	}
	return p
}

// LoggerExtractor returns a slog attribute extractor exposing the
// caller's username and tenant for correlated logs.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		p, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("principal",
			slog.String("username", p.Username),
			slog.String("tenant_type", string(p.Identity.Type)),
			slog.Int64("tenant_id", p.Identity.TenantID),
		), true
	}
}
