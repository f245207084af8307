// Package claims defines the flat claim model shared across the platform:
// wire-stable claim type constants, the ClaimSet container, the
// TenantIdentity projection used by tenancy resolution, work-order scoped
// tenancy claims, and the single-pass cache payload reader.
//
// # Claim model
//
// Claims are flat (type, value) string pairs for wire compatibility with
// the rest of the platform. Resolution logic never re-scans the flat list;
// it operates on a TenantIdentity projected once per request via Project.
//
// # Cache payloads
//
// Claim sets travel through the shared distributed cache as a JSON
// envelope {"claims":[...],"signature":"..."}. Read parses the envelope in
// one forward-only scan and computes SHA-256 over the exact byte span of
// the claims array, so the signature binds the claims without requiring
// the envelope to be reserialized byte-identically on verification:
//
//	env, err := claims.Read(payload)
//	if err != nil {
//	    // treat as cache miss, never as authenticated data
//	}
//	ok, err := verifier.Verify(ctx, env.Hash, env.Signature, keyName)
//
// MarshalClaims and EncodeEnvelope are the inverse pair used when
// populating the cache.
package claims
