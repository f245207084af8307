package pg

import "errors"

var (
	ErrFailedToParseConfig    = errors.New("failed to parse postgres config")
	ErrFailedToOpenConnection = errors.New("failed to open postgres connection")
	ErrHealthcheckFailed      = errors.New("postgres healthcheck failed")
)
