package signing_test

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exosplatform/platformkit/pkg/signing"
)

type countingKeyService struct {
	inner signing.KeyService
	calls int
}

func (c *countingKeyService) CryptoClient(ctx context.Context, keyName string) (signing.CryptoClient, error) {
	c.calls++
	return c.inner.CryptoClient(ctx, keyName)
}

func TestService(t *testing.T) {
	t.Parallel()

	keys, err := signing.GenerateLocalKeyService("claims-signing")
	require.NoError(t, err)

	t.Run("sign then verify round trip", func(t *testing.T) {
		t.Parallel()

		svc, err := signing.New(keys)
		require.NoError(t, err)

		digest := sha256.Sum256([]byte(`[{"type":"name","value":"alice"}]`))
		sig, err := svc.Sign(context.Background(), digest[:], "claims-signing")
		require.NoError(t, err)

		ok, err := svc.Verify(context.Background(), digest[:], sig, "claims-signing")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("verify rejects mutated signature without error", func(t *testing.T) {
		t.Parallel()

		svc, err := signing.New(keys)
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("payload"))
		sig, err := svc.Sign(context.Background(), digest[:], "claims-signing")
		require.NoError(t, err)

		sig[0] ^= 0x01
		ok, err := svc.Verify(context.Background(), digest[:], sig, "claims-signing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("verify rejects mutated digest", func(t *testing.T) {
		t.Parallel()

		svc, err := signing.New(keys)
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("payload"))
		sig, err := svc.Sign(context.Background(), digest[:], "claims-signing")
		require.NoError(t, err)

		other := sha256.Sum256([]byte("payload2"))
		ok, err := svc.Verify(context.Background(), other[:], sig, "claims-signing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("caches crypto client per key name", func(t *testing.T) {
		t.Parallel()

		counting := &countingKeyService{inner: keys}
		svc, err := signing.New(counting)
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("payload"))
		for i := 0; i < 3; i++ {
			_, err := svc.Sign(context.Background(), digest[:], "claims-signing")
			require.NoError(t, err)
		}
		assert.Equal(t, 1, counting.calls)
	})

	t.Run("unknown key surfaces key service failure", func(t *testing.T) {
		t.Parallel()

		svc, err := signing.New(keys)
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("payload"))
		_, err = svc.Sign(context.Background(), digest[:], "no-such-key")
		assert.ErrorIs(t, err, signing.ErrKeyServiceUnavailable)
		assert.ErrorIs(t, err, signing.ErrUnknownKey)
	})

	t.Run("empty key name rejected", func(t *testing.T) {
		t.Parallel()

		svc, err := signing.New(keys)
		require.NoError(t, err)

		digest := sha256.Sum256([]byte("payload"))
		_, err = svc.Sign(context.Background(), digest[:], "")
		assert.ErrorIs(t, err, signing.ErrMissingKeyName)
	})

	t.Run("nil key service rejected", func(t *testing.T) {
		t.Parallel()

		_, err := signing.New(nil)
		assert.ErrorIs(t, err, signing.ErrMissingKeyService)
	})
}
