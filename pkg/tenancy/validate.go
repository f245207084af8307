package tenancy

import (
	"fmt"
	"slices"

	"github.com/exosplatform/platformkit/pkg/claims"
)

// Validate checks that the caller is allowed to switch into the candidate
// servicer tenant. The candidate must appear in the caller's
// associatedservicertenantidentifier claims; a failed check is a hard
// authorization failure, never a silent downgrade to the default tenant.
func Validate(set claims.ClaimSet, candidateTenantID int64) error {
	allowed := set.Int64s(claims.TypeAssociatedServicer)
	if slices.Contains(allowed, candidateTenantID) {
		return nil
	}
	return fmt.Errorf("%w: servicer tenant %d not in caller's associated tenants", ErrTenantSwitchDenied, candidateTenantID)
}

// ApplyTenantSwitch replaces the caller's tenant identifier claim with the
// requested servicer tenant after validating the switch. The claim that
// gets replaced depends on the caller's own tenant type: servicer-side
// callers carry it on servicertenantidentifier, everyone else on
// tenantidentifier.
func ApplyTenantSwitch(set claims.ClaimSet, requestedTenantID int64) (claims.ClaimSet, error) {
	if err := Validate(set, requestedTenantID); err != nil {
		return nil, err
	}

	tt, _ := set.Get(claims.TypeTenantType)
	claimType := claims.TypeTenantIdentifier
	switch claims.ParseTenantType(tt) {
	case claims.TenantTypeServicer, claims.TenantTypeExos:
		claimType = claims.TypeServicerTenant
	}

	return set.Replace(claimType, fmt.Sprintf("%d", requestedTenantID)), nil
}
