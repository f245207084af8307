// Package tenantheader propagates a resolved work-order tenant context
// between services as a signed HTTP header, so downstream services can
// trust the tenancy without re-resolving it.
//
// The header value is base64url(json).base64url(hmac-sha256). The two
// directions have deliberately asymmetric failure modes: encoding is
// fail-open (a precondition failure just omits the header and the
// downstream service re-resolves), while decoding is fail-closed (any
// structural, signature or work-order-mismatch failure must abort the
// request; a forged header is an elevation-of-privilege vector).
package tenantheader
