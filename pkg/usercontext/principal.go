package usercontext

import (
	"github.com/exosplatform/platformkit/pkg/claims"
	"github.com/exosplatform/platformkit/pkg/credential"
)

// Principal is the fully resolved caller context for one request: the
// normalized claim set, the tenancy projection used for entitlement
// checks, and the work-order tenancy override when one applies. It is
// built once per request and never mutated after being attached to the
// request context.
type Principal struct {
	Username  string
	Scheme    credential.Scheme
	Claims    claims.ClaimSet
	Identity  claims.TenantIdentity
	WorkOrder claims.WorkOrderTenancy

	// FromCache reports whether the claim set came from the distributed
	// cache rather than a fresh user-service fetch.
	FromCache bool
}
