package tenantheader

import "errors"

var (
	// ErrMissingSecret is returned when a codec is created without a
	// signing secret.
	ErrMissingSecret = errors.New("missing tenant header signing secret")

	// ErrEmptyTenancy is returned when encoding a tenancy with no data.
	ErrEmptyTenancy = errors.New("empty work-order tenancy")

	// ErrMalformedHeader is returned for a header value that is not
	// structurally valid.
	ErrMalformedHeader = errors.New("malformed tenant header")

	// ErrInvalidSignature is returned when the header signature does not
	// verify.
	ErrInvalidSignature = errors.New("invalid tenant header signature")

	// ErrWorkOrderMismatch is returned when the header's embedded work
	// order does not match the one the request claims. This is a hard
	// security failure, never downgraded.
	ErrWorkOrderMismatch = errors.New("tenant header work order mismatch")
)
