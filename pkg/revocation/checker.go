package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

// Checker reports whether an access token has been revoked. A revoked
// token aborts request processing before any cache read happens.
type Checker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, token string) (bool, error)

// IsRevoked calls the function.
func (f CheckerFunc) IsRevoked(ctx context.Context, token string) (bool, error) {
	return f(ctx, token)
}

// legacyKeyFormat is the wire-stable legacy token cache key. It must stay
// bit-exact for interop with entries written by older services.
const legacyKeyFormat = "MTK_%s"

// LegacyKey builds the legacy revocation key for a token.
func LegacyKey(token string) string {
	return fmt.Sprintf(legacyKeyFormat, strings.ToLower(token))
}

// RedisChecker checks token revocation against the shared Redis revocation
// list using the legacy MTK_ key format.
type RedisChecker struct {
	client redis.Cmdable
}

// NewRedisChecker creates a Redis-backed revocation checker.
func NewRedisChecker(client redis.Cmdable) (*RedisChecker, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	return &RedisChecker{client: client}, nil
}

// IsRevoked reports whether the token appears on the revocation list.
func (c *RedisChecker) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, LegacyKey(token)).Result()
	if err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}
	return n > 0, nil
}

// Revoke places a token on the revocation list until its natural expiry.
func (c *RedisChecker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := c.client.Set(ctx, LegacyKey(token), "1", ttl).Err(); err != nil {
		return errors.Join(ErrCheckFailed, err)
	}
	return nil
}

// Querier is the subset of pgxpool.Pool the Postgres checker needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresChecker checks token revocation against a revoked_tokens table.
// Tokens are stored hashed, never raw.
type PostgresChecker struct {
	db Querier
}

// NewPostgresChecker creates a Postgres-backed revocation checker.
func NewPostgresChecker(db Querier) (*PostgresChecker, error) {
	if db == nil {
		return nil, ErrMissingClient
	}
	return &PostgresChecker{db: db}, nil
}

// IsRevoked reports whether the token's hash appears in revoked_tokens.
func (c *PostgresChecker) IsRevoked(ctx context.Context, token string) (bool, error) {
	sum := sha256.Sum256([]byte(strings.ToLower(token)))
	var revoked bool
	err := c.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = $1 AND revoked_at <= now())`,
		hex.EncodeToString(sum[:]),
	).Scan(&revoked)
	if err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}
	return revoked, nil
}
