package usercontext

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized classifies every credential, revocation,
	// tenant-switch and signed-header failure. Requests failing with it
	// abort with no fallback identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoPrincipal is returned when no principal is present in the
	// context.
	ErrNoPrincipal = fmt.Errorf("%w: no principal in context", ErrUnauthorized)

	// ErrMissingDependency is returned when a required collaborator is nil.
	ErrMissingDependency = errors.New("missing required dependency")
)
