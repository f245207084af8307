// Package pg connects the pgx connection pool backing the Postgres token
// revocation checker.
package pg
