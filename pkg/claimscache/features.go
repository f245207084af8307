package claimscache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/exosplatform/platformkit/pkg/cache"
	"github.com/exosplatform/platformkit/pkg/claims"
)

// FeatureService fetches the feature claims enabled for a servicer tenant.
type FeatureService interface {
	GetServicerFeatures(ctx context.Context, servicerTenantID int64) (claims.ClaimSet, error)
}

const (
	defaultFeatureTTL  = 2 * time.Hour
	defaultFeatureSize = 1000

	// slidingMargin is subtracted from the TTL for the sliding extension
	// applied on each hit, so an entry can never outlive its original TTL
	// by a full window on a single touch.
	slidingMargin = 2 * time.Minute
)

// featureCache wraps a FeatureService with an in-process TTL cache.
// Entries race last-writer-wins on concurrent population; feature claims
// are derivable and idempotent so no locking across the fetch is needed.
type featureCache struct {
	svc   FeatureService
	lru   *cache.LRUCache[string, claims.ClaimSet]
	ttl   time.Duration
	slide time.Duration
}

func newFeatureCache(svc FeatureService, ttl time.Duration, size int) *featureCache {
	if ttl <= 0 {
		ttl = defaultFeatureTTL
	}
	if size <= 0 {
		size = defaultFeatureSize
	}
	slide := ttl - slidingMargin
	if slide <= 0 {
		slide = ttl
	}
	return &featureCache{
		svc:   svc,
		lru:   cache.NewLRUCache[string, claims.ClaimSet](size),
		ttl:   ttl,
		slide: slide,
	}
}

// featureKey is the wire-stable composite key: the servicer tenant id,
// lowercased and trimmed.
func featureKey(servicerTenantID int64) string {
	return strings.ToLower(strings.TrimSpace(strconv.FormatInt(servicerTenantID, 10)))
}

func (f *featureCache) get(ctx context.Context, servicerTenantID int64) (claims.ClaimSet, error) {
	key := featureKey(servicerTenantID)
	if set, ok := f.lru.Get(key); ok {
		f.lru.Extend(key, f.slide)
		return set, nil
	}

	set, err := f.svc.GetServicerFeatures(ctx, servicerTenantID)
	if err != nil {
		return nil, err
	}
	f.lru.PutTTL(key, set, f.ttl)
	return set, nil
}
