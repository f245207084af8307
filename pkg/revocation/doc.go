// Package revocation answers one question on the authentication hot path:
// has this access token been revoked. The check runs before any claims
// cache read, and a store failure is a hard failure rather than an
// implicit "not revoked".
//
// Two implementations ship with the package: RedisChecker against the
// shared revocation list using the legacy MTK_{token} key format, and
// PostgresChecker against a revoked_tokens table keyed by token hash.
package revocation
