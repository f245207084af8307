package claims

import "errors"

var (
	// ErrMalformedPayload is returned when a cache payload is structurally
	// invalid or truncated.
	ErrMalformedPayload = errors.New("malformed claims payload")

	// ErrMissingClaims is returned when the payload has no claims array.
	ErrMissingClaims = errors.New("claims payload missing claims array")

	// ErrMissingSignature is returned when the payload has no signature.
	ErrMissingSignature = errors.New("claims payload missing signature")

	// ErrInvalidSignatureEncoding is returned when the signature is not
	// valid base64.
	ErrInvalidSignatureEncoding = errors.New("invalid signature encoding")
)
