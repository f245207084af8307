package usercontext

import (
	"errors"
	"net/http"
	"strings"

	"github.com/exosplatform/platformkit/pkg/claims"
)

// ErrorHandler handles principal resolution failures.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrUnauthorized) {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

type middlewareConfig struct {
	errorHandler ErrorHandler
	skipPaths    []string
	principalFn  func(r *http.Request) claims.ClaimSet
}

// MiddlewareOption configures the middleware.
type MiddlewareOption func(*middlewareConfig)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithSkipPaths skips principal resolution for paths with the given
// prefixes (health checks, metrics).
func WithSkipPaths(paths ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithPrincipalClaims supplies the claim set an upstream authentication
// handler attached to the request, if any.
func WithPrincipalClaims(fn func(r *http.Request) claims.ClaimSet) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.principalFn = fn
		}
	}
}

// Middleware resolves the caller's principal on every request and attaches
// it to the request context. Resolution failures abort the request; there
// is no fallback or guest identity.
func Middleware(builder *Builder, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler: defaultErrorHandler,
		principalFn:  func(*http.Request) claims.ClaimSet { return nil },
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			p, err := builder.Build(r.Context(), r, cfg.principalFn(r))
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequirePrincipal ensures a principal is present in the context,
// protecting routes mounted after a conditional resolution step.
func RequirePrincipal(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoPrincipal)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
