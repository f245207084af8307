// Package usercontext builds the per-request principal: who the caller is
// and which tenant-scoped entities they may see.
//
// Build composes the platform's identity subsystems in a strictly
// sequential pipeline: credential arbitration, revocation-checked claims
// resolution through the signed distributed cache, explicit tenant-switch
// validation (cache hits only; a fresh fetch is already tenant-scoped),
// servicer feature claims, and finally the work-order tenancy override
// from a verified signed header or the order-management service.
//
// Failures split by classification: everything that means "this caller
// may not do this" wraps ErrUnauthorized and aborts with no fallback
// identity; transient external failures propagate unchanged for the
// caller's retry policy; cache-integrity failures never surface at all
// (the cache self-heals).
package usercontext
