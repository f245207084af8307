package claimscache

import "errors"

var (
	// ErrMissingStore is returned when no distributed store is supplied.
	ErrMissingStore = errors.New("missing claims cache store")

	// ErrMissingDependency is returned when a required collaborator is nil.
	ErrMissingDependency = errors.New("missing required dependency")

	// ErrMissingKeyName is returned when no signing key name is configured.
	ErrMissingKeyName = errors.New("missing signing key name")

	// ErrTokenRevoked is returned when the presented token has been
	// revoked. The request aborts with no fallback identity.
	ErrTokenRevoked = errors.New("access token revoked")

	// ErrStoreUnavailable is returned when the distributed store cannot be
	// reached.
	ErrStoreUnavailable = errors.New("claims cache store unavailable")
)
