package claimscache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/exosplatform/platformkit/pkg/claims"
	"github.com/exosplatform/platformkit/pkg/revocation"
	"github.com/exosplatform/platformkit/pkg/signing"
)

// UserService fetches the authoritative claim set for a user from the
// user service. An optional servicer tenant id scopes the fetch when the
// caller is operating under an explicit tenant override.
type UserService interface {
	GetUserClaims(ctx context.Context, username string, servicerTenantID int64) (claims.ClaimSet, error)
}

// Config holds the claims cache settings.
type Config struct {
	// SigningKeyName names the key-service key that signs cached claims.
	SigningKeyName string `env:"CLAIMS_SIGNING_KEY_NAME,required"`

	// ClaimsTTL bounds how long a signed claim entry lives in the cache.
	ClaimsTTL time.Duration `env:"CLAIMS_CACHE_TTL" envDefault:"30m"`

	// FeatureTTL and FeatureCacheSize bound the in-memory servicer
	// feature cache.
	FeatureTTL       time.Duration `env:"SERVICER_FEATURE_CACHE_TTL" envDefault:"2h"`
	FeatureCacheSize int           `env:"SERVICER_FEATURE_CACHE_SIZE" envDefault:"1000"`
}

// Cache is the get-or-populate claims cache. Reads verify the entry's
// signature before trusting it; writes sign the claim hash through the
// key-management service. An entry that fails verification is a cache
// miss, never authenticated data.
type Cache struct {
	store       Store
	users       UserService
	revocations revocation.Checker
	signer      *signing.Service
	keyName     string
	ttl         time.Duration
	features    *featureCache
	log         *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTTL overrides the claim entry TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithFeatureService enables servicer feature claims, cached in-process
// with the given TTL and capacity.
func WithFeatureService(svc FeatureService, ttl time.Duration, size int) Option {
	return func(c *Cache) {
		c.features = newFeatureCache(svc, ttl, size)
	}
}

// New creates a claims cache. The store, user service, revocation checker
// and signer are all required; feature claims are optional.
func New(store Store, users UserService, revocations revocation.Checker, signer *signing.Service, keyName string, opts ...Option) (*Cache, error) {
	if store == nil {
		return nil, ErrMissingStore
	}
	if users == nil || revocations == nil || signer == nil {
		return nil, ErrMissingDependency
	}
	if keyName == "" {
		return nil, ErrMissingKeyName
	}
	c := &Cache{
		store:       store,
		users:       users,
		revocations: revocations,
		signer:      signer,
		keyName:     keyName,
		ttl:         30 * time.Minute,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetOrBuild resolves the claim set for an access token. The pipeline is
// strictly sequential: revocation check, verified cache read, then an
// authoritative user-service fetch with a signed write-back on miss.
// fromCache reports whether the returned set came from the cache; callers
// use it to decide whether a tenant-switch re-check is needed.
func (c *Cache) GetOrBuild(ctx context.Context, lookupToken, username string, servicerTenantID int64) (set claims.ClaimSet, fromCache bool, err error) {
	revoked, err := c.revocations.IsRevoked(ctx, lookupToken)
	if err != nil {
		return nil, false, fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		c.log.Error("revoked token presented", slog.String("username", username))
		return nil, false, ErrTokenRevoked
	}

	key := UserClaimsKey(lookupToken)
	if cached, ok := c.readVerified(ctx, key, username); ok {
		return cached, true, nil
	}

	// Authoritative fetch. A user-service failure is a hard failure for
	// the request; there is no fallback identity.
	set, err = c.users.GetUserClaims(ctx, username, servicerTenantID)
	if err != nil {
		return nil, false, fmt.Errorf("fetch user claims for %q: %w", username, err)
	}

	c.writeSigned(ctx, key, username, set)
	return set, false, nil
}

// readVerified reads a cache entry and verifies its signature. Every
// failure mode (store down, malformed payload, signature mismatch,
// key-service outage) degrades to a miss so the entry self-heals from the
// authoritative source.
func (c *Cache) readVerified(ctx context.Context, key, username string) (claims.ClaimSet, bool) {
	payload, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("claims cache read failed, treating as miss",
			slog.String("username", username), slog.Any("error", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	env, err := claims.Read(payload)
	if err != nil {
		c.log.Warn("cached claims payload rejected, treating as miss",
			slog.String("username", username), slog.Any("error", err))
		return nil, false
	}

	verified, err := c.signer.Verify(ctx, env.Hash, env.Signature, c.keyName)
	if err != nil {
		c.log.Warn("claims signature verification errored, treating as miss",
			slog.String("username", username), slog.Any("error", err))
		return nil, false
	}
	if !verified {
		c.log.Warn("cached claims signature mismatch, treating as miss",
			slog.String("username", username))
		return nil, false
	}

	return env.Claims, true
}

// writeSigned signs the claim hash and stores the sealed payload. Caching
// is best-effort: a signing or store failure only costs the next request a
// rebuild, so it is logged and swallowed.
func (c *Cache) writeSigned(ctx context.Context, key, username string, set claims.ClaimSet) {
	arr, hash, err := claims.MarshalClaims(set)
	if err != nil {
		c.log.Warn("marshal claims for cache failed",
			slog.String("username", username), slog.Any("error", err))
		return
	}
	sig, err := c.signer.Sign(ctx, hash, c.keyName)
	if err != nil {
		c.log.Warn("sign claims for cache failed",
			slog.String("username", username), slog.Any("error", err))
		return
	}
	if err := c.store.Set(ctx, key, claims.EncodeEnvelope(arr, sig), c.ttl); err != nil {
		c.log.Warn("claims cache write failed",
			slog.String("username", username), slog.Any("error", err))
	}
}

// Invalidate drops all cached entries for a token.
func (c *Cache) Invalidate(ctx context.Context, lookupToken string) error {
	return errors.Join(
		c.store.Delete(ctx, UserClaimsKey(lookupToken)),
		c.store.Delete(ctx, WorkOrderClaimsKey(lookupToken)),
	)
}

// AppendServicerFeatures appends servicer feature claims for the set's
// servicer tenant, if a feature service is configured and the set carries
// a positive servicer tenant id. Feature claims are not identity-bearing,
// so they live in a short-lived unsigned in-process cache.
func (c *Cache) AppendServicerFeatures(ctx context.Context, set claims.ClaimSet) (claims.ClaimSet, error) {
	if c.features == nil {
		return set, nil
	}
	tenantID, ok := set.Int64(claims.TypeServicerTenant)
	if !ok || tenantID <= 0 {
		return set, nil
	}
	features, err := c.features.get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("fetch servicer features for tenant %d: %w", tenantID, err)
	}
	return append(set.Clone(), features...), nil
}
