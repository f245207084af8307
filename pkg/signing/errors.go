package signing

import "errors"

var (
	// ErrMissingKeyService is returned when a Service is created without a
	// key service.
	ErrMissingKeyService = errors.New("missing key service")

	// ErrMissingKeyName is returned when an empty key name is supplied.
	ErrMissingKeyName = errors.New("missing key name")

	// ErrUnknownKey is returned when the key service has no key under the
	// requested name.
	ErrUnknownKey = errors.New("unknown signing key")

	// ErrKeyServiceUnavailable is returned when the key-management service
	// cannot be reached or returns an unexpected response.
	ErrKeyServiceUnavailable = errors.New("key service unavailable")

	// ErrVaultNotConfigured is returned when the Vault address or token is
	// missing from configuration.
	ErrVaultNotConfigured = errors.New("vault key service not configured")
)
