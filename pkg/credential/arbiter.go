package credential

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/exosplatform/platformkit/pkg/claims"
)

// Scheme identifies which authentication handler produced the caller's
// principal.
type Scheme string

const (
	SchemeAPIKey        Scheme = "ApiKey"
	SchemeBearer        Scheme = "Bearer"
	SchemeExosAuthToken Scheme = "ExosAuthToken"
	SchemeExosCookie    Scheme = "ExosCookie"
)

// AuthTokenHeader is the legacy token header consumed alongside the
// standard Authorization header.
const AuthTokenHeader = "authtoken"

// Credential is the arbitration result: the winning scheme and the token
// used to look the caller up in the claims cache. For API-key callers the
// lookup token is the previously minted downstream access token carried on
// the principal, never the API key itself.
type Credential struct {
	Scheme      Scheme
	LookupToken string
}

// Arbiter determines which authentication scheme produced the current
// principal and extracts the cache lookup token.
type Arbiter struct {
	cookieName string
}

// Option configures an Arbiter.
type Option func(*Arbiter)

// WithCookieName sets the legacy auth cookie name to consult.
func WithCookieName(name string) Option {
	return func(a *Arbiter) {
		if name != "" {
			a.cookieName = name
		}
	}
}

// NewArbiter creates a credential arbiter.
func NewArbiter(opts ...Option) *Arbiter {
	a := &Arbiter{cookieName: "ExosAuth"}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Resolve determines the caller's scheme and lookup token. An
// OriginalAuthSchemeName claim set by a prior authentication handler wins;
// otherwise the Authorization header's scheme token is matched
// case-insensitively, then the legacy authtoken header, then the
// configured cookie.
func (a *Arbiter) Resolve(r *http.Request, principal claims.ClaimSet) (Credential, error) {
	if scheme, ok := principal.Get(claims.TypeOriginalAuthScheme); ok {
		return a.resolveScheme(Scheme(scheme), r, principal)
	}

	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, token, found := strings.Cut(auth, " ")
		if !found {
			return Credential{}, ErrMalformedAuthorization
		}
		switch strings.ToLower(strings.TrimSpace(scheme)) {
		case "bearer":
			return Credential{Scheme: SchemeBearer, LookupToken: strings.TrimSpace(token)}, nil
		case "apikey", "basic":
			return a.resolveScheme(SchemeAPIKey, r, principal)
		case "exosauthtoken":
			return Credential{Scheme: SchemeExosAuthToken, LookupToken: strings.TrimSpace(token)}, nil
		default:
			return Credential{}, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
		}
	}

	if token := r.Header.Get(AuthTokenHeader); token != "" {
		return Credential{Scheme: SchemeExosAuthToken, LookupToken: token}, nil
	}

	if c, err := r.Cookie(a.cookieName); err == nil && c.Value != "" {
		return Credential{Scheme: SchemeExosCookie, LookupToken: c.Value}, nil
	}

	return Credential{}, ErrNoCredentials
}

func (a *Arbiter) resolveScheme(scheme Scheme, r *http.Request, principal claims.ClaimSet) (Credential, error) {
	switch scheme {
	case SchemeAPIKey:
		// The API key was exchanged for a downstream token at
		// authentication time; that token is the cache key.
		token, ok := principal.Get(claims.TypeAPIKeyAccessToken)
		if !ok || token == "" {
			return Credential{}, ErrMissingAPIKeyToken
		}
		return Credential{Scheme: SchemeAPIKey, LookupToken: token}, nil
	case SchemeBearer:
		auth := r.Header.Get("Authorization")
		_, token, _ := strings.Cut(auth, " ")
		if token = strings.TrimSpace(token); token == "" {
			return Credential{}, ErrNoCredentials
		}
		return Credential{Scheme: SchemeBearer, LookupToken: token}, nil
	case SchemeExosAuthToken:
		if token := r.Header.Get(AuthTokenHeader); token != "" {
			return Credential{Scheme: SchemeExosAuthToken, LookupToken: token}, nil
		}
		return Credential{}, ErrNoCredentials
	case SchemeExosCookie:
		c, err := r.Cookie(a.cookieName)
		if err != nil || c.Value == "" {
			return Credential{}, ErrNoCredentials
		}
		return Credential{Scheme: SchemeExosCookie, LookupToken: c.Value}, nil
	default:
		return Credential{}, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

// BearerSubject extracts the subject from a bearer JWT without verifying
// it. The caller's identity is established by the claims cache and the
// user service, not by the token itself, so unverified parsing is only
// used to pick the username for the authoritative lookup.
func BearerSubject(token string) (string, error) {
	var sc jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &sc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedAuthorization, err)
	}
	return sc.Subject, nil
}
