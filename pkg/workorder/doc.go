// Package workorder fetches the per-work-order tenancy context from the
// order-management service. Tenancy is resolved fresh on every request
// and deliberately never cached: a work order's tenancy can change while
// a caller's identity claims stay stable.
package workorder
