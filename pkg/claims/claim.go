package claims

import (
	"strconv"
	"strings"
)

// Wire-stable claim type constants. These values travel between services
// and through the shared claims cache, so they must match the platform's
// established wire format exactly.
const (
	TypeName                    = "name"
	TypeTenantType              = "tenanttype"
	TypeTenantIdentifier        = "tenantidentifier"
	TypeServicerTenant          = "servicertenantidentifier"
	TypeAssociatedServicer      = "associatedservicertenantidentifier"
	TypeLOB                     = "lob"
	TypeSubClient               = "subclient"
	TypeMasterClient            = "masterclient"
	TypeVendor                  = "vendor"
	TypeSubContractor           = "subcontractor"
	TypeUserTeam                = "userteam"
	TypeWorkOrderID             = "claimworkorderid"
	TypeOperationalType         = "operationaltype"
	TypeIsManager               = "ismanager"
	TypeExosAdmin               = "exosadmin"
	TypeHeaderWorkOrderID       = "headerworkorderid"
	TypeSourceSystemWorkOrderNo = "sourcesystemworkordernumber"
	TypeSourceSystemOrderNo     = "sourcesystemordernumber"
	TypeOriginalAuthScheme      = "originalauthschemename"
	TypeAPIKeyAccessToken       = "apikeyaccesstoken"
	TypeSystemCaller            = "systemcaller"

	// ServicerGroupPrefix prefixes per-system-function servicer group
	// claims, e.g. "servicergroup:inspection".
	ServicerGroupPrefix = "servicergroup:"

	// Work-order tenancy claim types, one per tenancy dimension.
	TypeWOServicerGroupTenant = "woservicergrouptenantid"
	TypeWOVendorTenant        = "wovendortenantid"
	TypeWOSubContractorTenant = "wosubcontractortenantid"
	TypeWOClientTenant        = "woclienttenantid"
	TypeWOSubClientTenant     = "wosubclienttenantid"
)

// Claim is a single typed key-value assertion about the authenticated
// caller. Claims are immutable once constructed; multiplicity per type is
// allowed (e.g. multiple work-order claims).
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ClaimSet is an ordered sequence of claims describing one subject.
// Mutating operations return a new set; overrides remove-then-add a claim
// type rather than patching a claim in place.
type ClaimSet []Claim

// New builds a claim set from the given claims.
func New(cc ...Claim) ClaimSet {
	set := make(ClaimSet, 0, len(cc))
	return append(set, cc...)
}

// Get returns the first value for the given claim type.
func (s ClaimSet) Get(claimType string) (string, bool) {
	for _, c := range s {
		if c.Type == claimType {
			return c.Value, true
		}
	}
	return "", false
}

// GetAll returns all values for the given claim type, preserving order.
func (s ClaimSet) GetAll(claimType string) []string {
	var values []string
	for _, c := range s {
		if c.Type == claimType {
			values = append(values, c.Value)
		}
	}
	return values
}

// Has reports whether any claim of the given type is present.
func (s ClaimSet) Has(claimType string) bool {
	_, ok := s.Get(claimType)
	return ok
}

// Add returns a new set with the claim appended.
func (s ClaimSet) Add(claimType, value string) ClaimSet {
	out := make(ClaimSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, Claim{Type: claimType, Value: value})
}

// Remove returns a new set without any claims of the given type.
func (s ClaimSet) Remove(claimType string) ClaimSet {
	out := make(ClaimSet, 0, len(s))
	for _, c := range s {
		if c.Type != claimType {
			out = append(out, c)
		}
	}
	return out
}

// Replace returns a new set where all claims of the given type are removed
// and a single claim with the new value is appended.
func (s ClaimSet) Replace(claimType, value string) ClaimSet {
	return s.Remove(claimType).Add(claimType, value)
}

// Username returns the subject name claim value, empty if absent.
func (s ClaimSet) Username() string {
	v, _ := s.Get(TypeName)
	return v
}

// Int64 returns the first value for the claim type parsed as int64.
// Returns 0, false when the claim is absent or not numeric.
func (s ClaimSet) Int64(claimType string) (int64, bool) {
	v, ok := s.Get(claimType)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Int64s returns all values for the claim type parsed as int64,
// skipping non-numeric values.
func (s ClaimSet) Int64s(claimType string) []int64 {
	var out []int64
	for _, c := range s {
		if c.Type != claimType {
			continue
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(c.Value), 10, 64); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// Bool returns the first value for the claim type parsed as a boolean.
func (s ClaimSet) Bool(claimType string) (bool, bool) {
	v, ok := s.Get(claimType)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		return false, false
	}
	return b, true
}

// ExosAdmin returns the exosadmin claim as a three-state lookup: the second
// return distinguishes "claim absent" from an explicit false value.
func (s ClaimSet) ExosAdmin() (bool, bool) {
	return s.Bool(TypeExosAdmin)
}

// IsExosAdmin reports whether the caller carries an affirmative exosadmin
// claim, treating an absent claim as false.
func (s ClaimSet) IsExosAdmin() bool {
	v, _ := s.ExosAdmin()
	return v
}

// IsSystemCaller reports whether the set is explicitly marked as belonging
// to an internal system caller. Tenancy filters only fall back to
// match-all for sets carrying this marker.
func (s ClaimSet) IsSystemCaller() bool {
	v, _ := s.Bool(TypeSystemCaller)
	return v
}

// Clone returns a deep copy of the set.
func (s ClaimSet) Clone() ClaimSet {
	out := make(ClaimSet, len(s))
	copy(out, s)
	return out
}
