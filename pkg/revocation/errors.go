package revocation

import "errors"

var (
	// ErrMissingClient is returned when a checker is created without a
	// backing client.
	ErrMissingClient = errors.New("missing revocation store client")

	// ErrCheckFailed is returned when the revocation store cannot be
	// consulted. Callers must treat this as a hard failure, not as
	// "not revoked".
	ErrCheckFailed = errors.New("revocation check failed")
)
