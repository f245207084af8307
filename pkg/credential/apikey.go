package credential

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Versioned API-key password hash parameters. The version prefix lets the
// scheme evolve without invalidating stored hashes.
const (
	hashVersion    = 1
	pbkdf2Iters    = 10000
	saltLen        = 16 // 128-bit salt
	derivedKeyLen  = 32 // 256-bit derived key
	hashFieldCount = 3  // version.salt.hash
)

// HashPassword derives a versioned salted hash for an API-key password.
// Format: "{version}.{saltHex}.{hashHex}", version 1 being
// PBKDF2-HMAC-SHA512 with 10000 iterations.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	dk := pbkdf2.Key([]byte(password), salt, pbkdf2Iters, derivedKeyLen, sha512.New)
	return fmt.Sprintf("%d.%s.%s", hashVersion, hex.EncodeToString(salt), hex.EncodeToString(dk)), nil
}

// ValidatePassword checks a password against a stored versioned hash.
// Unknown versions and malformed hashes validate as false with an error so
// callers can distinguish bad input from a wrong password.
func ValidatePassword(password, storedHash string) (bool, error) {
	parts := strings.SplitN(storedHash, ".", hashFieldCount)
	if len(parts) != hashFieldCount {
		return false, ErrMalformedHash
	}
	if parts[0] != "1" {
		return false, fmt.Errorf("%w: version %s", ErrUnsupportedHashVersion, parts[0])
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedHash
	}
	got := pbkdf2.Key([]byte(password), salt, pbkdf2Iters, len(want), sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// HashLookup retrieves the stored password hash for an API-key username.
type HashLookup func(ctx context.Context, username string) (string, error)

// TokenProvider exchanges an authenticated API-key username for an opaque
// downstream access token. The exchange happens once at authentication
// time; the resulting token is what flows through the claims cache.
type TokenProvider interface {
	Exchange(ctx context.Context, username string) (string, error)
}

// APIKeyAuthenticator validates Basic-encoded API-key credentials and
// exchanges them for a downstream access token.
type APIKeyAuthenticator struct {
	lookup HashLookup
	tokens TokenProvider
}

// NewAPIKeyAuthenticator creates an API-key authenticator.
func NewAPIKeyAuthenticator(lookup HashLookup, tokens TokenProvider) (*APIKeyAuthenticator, error) {
	if lookup == nil || tokens == nil {
		return nil, ErrMissingDependency
	}
	return &APIKeyAuthenticator{lookup: lookup, tokens: tokens}, nil
}

// Authenticate parses the request's Basic credentials, verifies the
// password against the stored hash and exchanges the identity for a
// downstream access token. All credential failures collapse into
// ErrInvalidAPIKey to avoid leaking which part was wrong.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context, r *http.Request) (username, accessToken string, err error) {
	username, password, ok := r.BasicAuth()
	if !ok || username == "" {
		return "", "", ErrInvalidAPIKey
	}

	stored, err := a.lookup(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("lookup api key hash: %w", err)
	}

	valid, err := ValidatePassword(password, stored)
	if err != nil || !valid {
		return "", "", ErrInvalidAPIKey
	}

	token, err := a.tokens.Exchange(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("exchange api key for token: %w", err)
	}
	return username, token, nil
}
