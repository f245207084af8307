// Package claimscache resolves access tokens to claim sets through a
// shared distributed cache with cryptographic integrity protection.
//
// The cache sits between the request pipeline and the authoritative user
// service. Entries are JSON envelopes whose claims-array byte span is
// hashed with SHA-256 and signed through the key-management service; a
// read only trusts an entry after the signature verifies. Any integrity
// failure (malformed payload, signature mismatch, key-service outage)
// degrades to a cache miss and the entry self-heals from the user
// service on the next populate. A poisoned or injected cache entry can
// therefore never forge elevated tenancy.
//
// The pipeline per lookup is strictly sequential: revocation check first
// (a revoked token aborts before any cache read), then the verified read,
// then the authoritative fetch and signed write-back on miss.
//
// Servicer feature claims ride alongside identity claims but are not
// security-sensitive the same way; they live in a short-lived unsigned
// in-process cache with sliding expiration, keyed per servicer tenant.
package claimscache
