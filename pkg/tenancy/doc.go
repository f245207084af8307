// Package tenancy implements the visibility rules between tenants of the
// platform's hierarchical pairs: servicer/servicer group,
// vendor/subcontractor and master client/sub client.
//
// BuildFilter turns a caller's tenancy into a pure Predicate over target
// entities; the same predicate backs runtime entitlement checks and
// database row filtering. The reserved ids -1 and -2 are full-access
// sentinels and match as wildcards on every dimension.
//
// Validate and ApplyTenantSwitch implement explicit tenant switching
// (impersonation / servicer override): the requested tenant must be listed
// in the caller's associatedservicertenantidentifier claims or the switch
// fails hard with ErrTenantSwitchDenied.
package tenancy
