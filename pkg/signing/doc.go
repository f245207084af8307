// Package signing verifies and produces asymmetric signatures over claim
// hashes through an external key-management service.
//
// The Service never holds key material: every Sign and Verify round-trips
// to the key service, trading a little latency for immediate key-rotation
// safety. What the Service does cache is the per-key-name CryptoClient, so
// repeated operations against the same key reuse the underlying
// connection.
//
// Two KeyService implementations ship with the package: VaultKeyService
// against a Vault transit secrets engine, and LocalKeyService holding
// in-memory RSA keys for development and tests. The algorithm is fixed to
// RSA-PKCS1v15 over SHA-256 digests.
package signing
