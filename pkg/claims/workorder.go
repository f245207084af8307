package claims

import "strconv"

// WorkOrderTenancy is a narrower tenancy context scoped to a single work
// order. It can override the caller's primary tenant identity for the
// duration of one request and is never cached across requests.
type WorkOrderTenancy struct {
	WorkOrderID                 int64  `json:"workOrderId"`
	ServicerGroupTenantID       int64  `json:"servicerGroupTenantId"`
	VendorTenantID              int64  `json:"vendorTenantId"`
	SubContractorTenantID       int64  `json:"subContractorTenantId"`
	ClientTenantID              int64  `json:"clientTenantId"`
	SubClientTenantID           int64  `json:"subClientTenantId"`
	SourceSystemWorkOrderNumber string `json:"sourceSystemWorkOrderNumber,omitempty"`
	SourceSystemOrderNumber     string `json:"sourceSystemOrderNumber,omitempty"`
}

// IsZero reports whether no tenancy information is present.
func (w WorkOrderTenancy) IsZero() bool {
	return w == WorkOrderTenancy{}
}

// Claims converts the work-order tenancy into its claim representation.
// Zero-valued dimensions are omitted.
func (w WorkOrderTenancy) Claims() ClaimSet {
	set := make(ClaimSet, 0, 8)
	add := func(claimType string, v int64) {
		if v != 0 {
			set = append(set, Claim{Type: claimType, Value: strconv.FormatInt(v, 10)})
		}
	}
	add(TypeWorkOrderID, w.WorkOrderID)
	add(TypeWOServicerGroupTenant, w.ServicerGroupTenantID)
	add(TypeWOVendorTenant, w.VendorTenantID)
	add(TypeWOSubContractorTenant, w.SubContractorTenantID)
	add(TypeWOClientTenant, w.ClientTenantID)
	add(TypeWOSubClientTenant, w.SubClientTenantID)
	if w.SourceSystemWorkOrderNumber != "" {
		set = append(set, Claim{Type: TypeSourceSystemWorkOrderNo, Value: w.SourceSystemWorkOrderNumber})
	}
	if w.SourceSystemOrderNumber != "" {
		set = append(set, Claim{Type: TypeSourceSystemOrderNo, Value: w.SourceSystemOrderNumber})
	}
	return set
}

// WorkOrderTenancyFromClaims reconstructs a work-order tenancy from its
// claim representation. Missing dimensions stay at zero.
func WorkOrderTenancyFromClaims(set ClaimSet) WorkOrderTenancy {
	var w WorkOrderTenancy
	w.WorkOrderID, _ = set.Int64(TypeWorkOrderID)
	w.ServicerGroupTenantID, _ = set.Int64(TypeWOServicerGroupTenant)
	w.VendorTenantID, _ = set.Int64(TypeWOVendorTenant)
	w.SubContractorTenantID, _ = set.Int64(TypeWOSubContractorTenant)
	w.ClientTenantID, _ = set.Int64(TypeWOClientTenant)
	w.SubClientTenantID, _ = set.Int64(TypeWOSubClientTenant)
	w.SourceSystemWorkOrderNumber, _ = set.Get(TypeSourceSystemWorkOrderNo)
	w.SourceSystemOrderNumber, _ = set.Get(TypeSourceSystemOrderNo)
	return w
}

// MergeWorkOrderTenancy overwrites any previous work-order claims on the
// set with the given tenancy. Work-order claims are recomputed fresh each
// request, so stale values are always removed first.
func MergeWorkOrderTenancy(set ClaimSet, w WorkOrderTenancy) ClaimSet {
	for _, t := range []string{
		TypeWorkOrderID,
		TypeWOServicerGroupTenant,
		TypeWOVendorTenant,
		TypeWOSubContractorTenant,
		TypeWOClientTenant,
		TypeWOSubClientTenant,
		TypeSourceSystemWorkOrderNo,
		TypeSourceSystemOrderNo,
	} {
		set = set.Remove(t)
	}
	return append(set, w.Claims()...)
}
