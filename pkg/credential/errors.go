package credential

import "errors"

var (
	// ErrNoCredentials is returned when no recognizable credential is
	// present on the request.
	ErrNoCredentials = errors.New("no credentials on request")

	// ErrMalformedAuthorization is returned for an Authorization header or
	// token that cannot be parsed.
	ErrMalformedAuthorization = errors.New("malformed authorization")

	// ErrUnsupportedScheme is returned for authentication schemes the
	// platform does not recognize.
	ErrUnsupportedScheme = errors.New("unsupported authentication scheme")

	// ErrMissingAPIKeyToken is returned when an API-key principal lacks
	// the exchanged downstream access token claim.
	ErrMissingAPIKeyToken = errors.New("api key principal missing access token claim")

	// ErrInvalidAPIKey is returned for any API-key credential failure.
	ErrInvalidAPIKey = errors.New("invalid api key credentials")

	// ErrMalformedHash is returned when a stored password hash does not
	// follow the version.salt.hash format.
	ErrMalformedHash = errors.New("malformed password hash")

	// ErrUnsupportedHashVersion is returned for hash versions this build
	// does not implement.
	ErrUnsupportedHashVersion = errors.New("unsupported password hash version")

	// ErrMissingDependency is returned when a required collaborator is nil.
	ErrMissingDependency = errors.New("missing required dependency")
)
