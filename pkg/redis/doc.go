// Package redis connects the application-scoped Redis client backing the
// distributed claims cache and the token revocation list.
package redis
