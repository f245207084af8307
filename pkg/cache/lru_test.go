package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exosplatform/platformkit/pkg/cache"
)

func TestLRUCache(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used at capacity", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)

		// Touch "a" so "b" becomes the eviction candidate.
		_, ok := c.Get("a")
		require.True(t, ok)

		c.Put("c", 3)
		assert.Equal(t, 2, c.Len())

		_, ok = c.Get("b")
		assert.False(t, ok)
		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("expired entries dropped on access", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](10)
		c.PutTTL("a", 1, time.Millisecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("extend slides expiry forward", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](10)
		c.PutTTL("a", 1, 20*time.Millisecond)
		require.True(t, c.Extend("a", time.Minute))

		time.Sleep(30 * time.Millisecond)
		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		assert.False(t, c.Extend("missing", time.Minute))
	})

	t.Run("put over existing key replaces value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](2)
		c.Put("a", 1)
		c.Put("a", 2)
		assert.Equal(t, 1, c.Len())

		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("remove returns removed value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](2)
		c.Put("a", 1)

		v, ok := c.Remove("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		_, ok = c.Remove("a")
		assert.False(t, ok)
	})

	t.Run("evict callback fires on eviction and clear", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](1)
		var evicted []string
		c.SetEvictCallback(func(key string, _ int) {
			evicted = append(evicted, key)
		})

		c.Put("a", 1)
		c.Put("b", 2)
		assert.Equal(t, []string{"a"}, evicted)

		c.Clear()
		assert.Equal(t, []string{"a", "b"}, evicted)
		assert.Zero(t, c.Len())
	})

	t.Run("non-positive capacity panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
	})
}
