package tenancy

import "errors"

var (
	// ErrTenantSwitchDenied is returned when a requested tenant override is
	// not present in the caller's associated servicer tenants.
	ErrTenantSwitchDenied = errors.New("tenant switch denied")
)
