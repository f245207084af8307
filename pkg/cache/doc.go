// Package cache provides a generic thread-safe LRU cache with optional
// per-entry TTL and sliding expiration.
//
// It backs the short-lived in-process caches of the platform: the
// per-key-name crypto client cache in pkg/signing and the servicer
// feature-claim cache in pkg/claimscache. Entries expire lazily on access;
// there is no background janitor, so an idle cache holds expired entries
// until they are touched or evicted by capacity pressure.
//
//	c := cache.NewLRUCache[string, string](100)
//	c.PutTTL("k", "v", 2*time.Hour)
//	if v, ok := c.Get("k"); ok {
//	    c.Extend("k", 2*time.Hour-2*time.Minute) // sliding expiry
//	    _ = v
//	}
package cache
