package claims

import (
	"strconv"
	"strings"
)

// TenantType identifies the organizational dimension a caller belongs to.
// Values are case-insensitive on the wire and normalized to lowercase.
type TenantType string

const (
	TenantTypeUnknown       TenantType = ""
	TenantTypeExos          TenantType = "exos"
	TenantTypeServicer      TenantType = "servicer"
	TenantTypeVendor        TenantType = "vendor"
	TenantTypeSubContractor TenantType = "subcontractor"
	TenantTypeMasterClient  TenantType = "masterclient"
	TenantTypeSubClient     TenantType = "subclient"
)

// ParseTenantType normalizes a wire tenant type value. Unknown values map
// to TenantTypeUnknown rather than an error; the tenancy layer treats an
// unknown type restrictively.
func ParseTenantType(v string) TenantType {
	switch t := TenantType(strings.ToLower(strings.TrimSpace(v))); t {
	case TenantTypeExos, TenantTypeServicer, TenantTypeVendor,
		TenantTypeSubContractor, TenantTypeMasterClient, TenantTypeSubClient:
		return t
	default:
		return TenantTypeUnknown
	}
}

// TenantIdentity is the strongly-typed projection of a claim set used by
// tenancy resolution. It is projected once per request so entitlement
// checks never re-scan the flat claim list.
type TenantIdentity struct {
	Username         string
	Type             TenantType
	TenantID         int64
	AssociatedIDs    []int64
	ServicerGroupIDs []int64
	IsManager        bool
	ExosAdmin        bool
	SystemCaller     bool
}

// Project derives a TenantIdentity from a claim set. Unknown tenant types
// leave the identity fields at their zero values.
func Project(set ClaimSet) TenantIdentity {
	id := TenantIdentity{
		Username:     set.Username(),
		SystemCaller: set.IsSystemCaller(),
	}

	tt, _ := set.Get(TypeTenantType)
	id.Type = ParseTenantType(tt)
	if id.Type == TenantTypeUnknown {
		return id
	}

	// Servicer-side callers carry their tenant on the servicer claim,
	// everyone else on the generic tenant identifier. Either may be the
	// only one present on legacy principals.
	if id.Type == TenantTypeServicer || id.Type == TenantTypeExos {
		if n, ok := set.Int64(TypeServicerTenant); ok {
			id.TenantID = n
		} else if n, ok := set.Int64(TypeTenantIdentifier); ok {
			id.TenantID = n
		}
	} else {
		if n, ok := set.Int64(TypeTenantIdentifier); ok {
			id.TenantID = n
		}
	}

	id.ServicerGroupIDs = servicerGroupIDs(set)

	// The associated-id list is always the counter-dimension of the
	// caller's own tenancy pair: sub-vendors for a vendor, servicer
	// groups for a servicer, and so on. The tenant-switch allowlist
	// (associatedservicertenantidentifier) is a separate concern and is
	// read straight off the claim set during override validation.
	switch id.Type {
	case TenantTypeVendor:
		id.AssociatedIDs = set.Int64s(TypeSubContractor)
	case TenantTypeSubContractor:
		id.AssociatedIDs = set.Int64s(TypeVendor)
	case TenantTypeMasterClient:
		id.AssociatedIDs = set.Int64s(TypeSubClient)
	case TenantTypeSubClient:
		id.AssociatedIDs = set.Int64s(TypeMasterClient)
	case TenantTypeServicer, TenantTypeExos:
		id.AssociatedIDs = id.ServicerGroupIDs
	}

	if v, ok := set.Bool(TypeIsManager); ok {
		id.IsManager = v
	}
	id.ExosAdmin = set.IsExosAdmin()

	return id
}

func servicerGroupIDs(set ClaimSet) []int64 {
	var ids []int64
	for _, c := range set {
		if !strings.HasPrefix(c.Type, ServicerGroupPrefix) {
			continue
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(c.Value), 10, 64); err == nil {
			ids = append(ids, n)
		}
	}
	return ids
}
