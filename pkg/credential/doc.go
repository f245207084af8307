// Package credential normalizes the platform's heterogeneous
// authentication schemes (API key, bearer JWT, legacy token header,
// legacy cookie) into a single arbitration result: which scheme produced
// the principal and which token keys the claims cache lookup.
//
// API keys never reach the claims cache directly. They are exchanged for
// an opaque downstream access token once at authentication time
// (APIKeyAuthenticator) and the token travels on the principal as the
// apikeyaccesstoken claim; the Arbiter reads it back from there.
//
// HashPassword/ValidatePassword implement the versioned salted hash scheme
// for stored API-key passwords: "{version}.{saltHex}.{hashHex}", version 1
// being PBKDF2-HMAC-SHA512 with 10000 iterations.
package credential
