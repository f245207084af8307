package tenancy

import (
	"slices"

	"github.com/exosplatform/platformkit/pkg/claims"
)

// Full-access sentinel ids. A tenancy column carrying one of these values
// applies to every tenant of that dimension; it is not a real tenant id
// and every comparison must treat it as a wildcard.
const (
	FullAccessAll      int64 = -1
	FullAccessInternal int64 = -2
)

// IsFullAccess reports whether the id is a full-access sentinel.
func IsFullAccess(id int64) bool {
	return id == FullAccessAll || id == FullAccessInternal
}

// Target carries the per-dimension tenant ids of an entity being checked
// for visibility, one field per side of each hierarchical pair.
type Target struct {
	ServicerTenantID      int64
	ServicerGroupTenantID int64
	VendorTenantID        int64
	SubContractorTenantID int64
	ClientTenantID        int64
	SubClientTenantID     int64
}

// Predicate decides whether a target entity is visible to a caller. The
// same predicate backs runtime entitlement checks and row-filter
// generation, so it must stay a pure function of its inputs.
type Predicate func(Target) bool

// matchAll and matchNone are the two degenerate predicates.
func matchAll(Target) bool  { return true }
func matchNone(Target) bool { return false }

// BuildFilter maps a caller's tenancy to a visibility predicate.
//
// Every hierarchical pair follows the same rules. With own = the target id
// on the caller's dimension and counter = the target id on the paired
// dimension:
//
//   - caller id is a sentinel: unconditional match (super admin)
//   - caller has associated counter-dimension ids: match when own equals
//     the caller id, when both target ids are sentinels, or when own is a
//     sentinel and the associated list contains counter
//   - no associated ids: match when both target ids are sentinels or own
//     equals the caller id
//
// An unknown tenant type yields a match-nothing predicate. The match-all
// fallback for non-tenant callers is only available through FilterFor,
// gated on an explicit system-caller marker.
func BuildFilter(tenantType claims.TenantType, tenantID int64, associatedIDs []int64) Predicate {
	switch tenantType {
	case claims.TenantTypeExos, claims.TenantTypeServicer:
		return pairFilter(tenantID, associatedIDs,
			func(t Target) (int64, int64) { return t.ServicerTenantID, t.ServicerGroupTenantID })
	case claims.TenantTypeVendor:
		return pairFilter(tenantID, associatedIDs,
			func(t Target) (int64, int64) { return t.VendorTenantID, t.SubContractorTenantID })
	case claims.TenantTypeSubContractor:
		return pairFilter(tenantID, associatedIDs,
			func(t Target) (int64, int64) { return t.SubContractorTenantID, t.VendorTenantID })
	case claims.TenantTypeMasterClient:
		return pairFilter(tenantID, associatedIDs,
			func(t Target) (int64, int64) { return t.ClientTenantID, t.SubClientTenantID })
	case claims.TenantTypeSubClient:
		return pairFilter(tenantID, associatedIDs,
			func(t Target) (int64, int64) { return t.SubClientTenantID, t.ClientTenantID })
	default:
		return matchNone
	}
}

// FilterFor builds the visibility predicate for a projected identity.
// System callers bypass tenancy entirely; everyone else goes through
// BuildFilter.
func FilterFor(id claims.TenantIdentity) Predicate {
	if id.SystemCaller {
		return matchAll
	}
	return BuildFilter(id.Type, id.TenantID, id.AssociatedIDs)
}

// pairFilter implements the shared per-pair match rules. dims extracts
// (own, counter) target ids for the caller's pair.
func pairFilter(callerID int64, associated []int64, dims func(Target) (int64, int64)) Predicate {
	if IsFullAccess(callerID) {
		return matchAll
	}

	if len(associated) > 0 {
		assoc := slices.Clone(associated)
		return func(t Target) bool {
			own, counter := dims(t)
			if own == callerID {
				return true
			}
			if IsFullAccess(own) && IsFullAccess(counter) {
				return true
			}
			return IsFullAccess(own) && slices.Contains(assoc, counter)
		}
	}

	return func(t Target) bool {
		own, counter := dims(t)
		if IsFullAccess(own) && IsFullAccess(counter) {
			return true
		}
		return own == callerID
	}
}
