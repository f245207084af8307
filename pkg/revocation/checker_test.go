package revocation_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exosplatform/platformkit/pkg/revocation"
)

func TestLegacyKey(t *testing.T) {
	t.Parallel()

	// Token case is normalized so revocations written by other services
	// always match.
	assert.Equal(t, "MTK_abc123", revocation.LegacyKey("ABC123"))
	assert.Equal(t, "MTK_abc123", revocation.LegacyKey("abc123"))
}

type fakeRow struct {
	revoked bool
	err     error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.revoked
	return nil
}

type fakeQuerier struct {
	lastArgs []any
	row      fakeRow
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.lastArgs = args
	return q.row
}

func TestPostgresChecker(t *testing.T) {
	t.Parallel()

	t.Run("queries by lowercased token hash", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{row: fakeRow{revoked: true}}
		checker, err := revocation.NewPostgresChecker(q)
		require.NoError(t, err)

		revoked, err := checker.IsRevoked(context.Background(), "ABC123")
		require.NoError(t, err)
		assert.True(t, revoked)

		sum := sha256.Sum256([]byte(strings.ToLower("ABC123")))
		require.Len(t, q.lastArgs, 1)
		assert.Equal(t, hex.EncodeToString(sum[:]), q.lastArgs[0])
	})

	t.Run("query failure wraps ErrCheckFailed", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{row: fakeRow{err: errors.New("connection reset")}}
		checker, err := revocation.NewPostgresChecker(q)
		require.NoError(t, err)

		_, err = checker.IsRevoked(context.Background(), "abc")
		assert.ErrorIs(t, err, revocation.ErrCheckFailed)
	})

	t.Run("nil querier rejected", func(t *testing.T) {
		t.Parallel()

		_, err := revocation.NewPostgresChecker(nil)
		assert.ErrorIs(t, err, revocation.ErrMissingClient)
	})
}

func TestRedisChecker(t *testing.T) {
	t.Parallel()

	t.Run("nil client rejected", func(t *testing.T) {
		t.Parallel()

		_, err := revocation.NewRedisChecker(nil)
		assert.ErrorIs(t, err, revocation.ErrMissingClient)
	})
}
