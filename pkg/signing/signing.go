package signing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/exosplatform/platformkit/pkg/cache"
)

// CryptoClient performs sign and verify round-trips for one named key held
// by the key-management service. Implementations never hold key material
// locally; every operation goes to the service so key rotation takes
// effect immediately.
type CryptoClient interface {
	// Sign signs a SHA-256 digest and returns the raw signature bytes.
	Sign(ctx context.Context, digest []byte) ([]byte, error)

	// Verify checks a signature over a SHA-256 digest. A false return with
	// nil error means the signature simply does not match.
	Verify(ctx context.Context, digest, signature []byte) (bool, error)
}

// KeyService hands out crypto clients scoped to a key name.
type KeyService interface {
	CryptoClient(ctx context.Context, keyName string) (CryptoClient, error)
}

// DefaultClientCacheSize bounds the per-key-name crypto client cache.
const DefaultClientCacheSize = 32

// Service signs and verifies claim hashes through a key-management
// service. The crypto clients are cached per key name so repeated
// operations reuse the underlying connection; the keys themselves are
// never cached.
type Service struct {
	keys    KeyService
	clients *cache.LRUCache[string, CryptoClient]
	log     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClientCacheSize bounds the number of cached crypto clients.
func WithClientCacheSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.clients = cache.NewLRUCache[string, CryptoClient](n)
		}
	}
}

// New creates a signing service backed by the given key service.
func New(keys KeyService, opts ...Option) (*Service, error) {
	if keys == nil {
		return nil, ErrMissingKeyService
	}
	s := &Service{
		keys:    keys,
		clients: cache.NewLRUCache[string, CryptoClient](DefaultClientCacheSize),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sign signs a digest with the named key.
func (s *Service) Sign(ctx context.Context, digest []byte, keyName string) ([]byte, error) {
	client, err := s.client(ctx, keyName)
	if err != nil {
		return nil, err
	}
	sig, err := client.Sign(ctx, digest)
	if err != nil {
		return nil, fmt.Errorf("sign with key %q: %w", keyName, err)
	}
	return sig, nil
}

// Verify checks a signature over a digest with the named key. A mismatch
// returns false with a nil error; only transport or key-service failures
// produce an error.
func (s *Service) Verify(ctx context.Context, digest, signature []byte, keyName string) (bool, error) {
	client, err := s.client(ctx, keyName)
	if err != nil {
		return false, err
	}
	ok, err := client.Verify(ctx, digest, signature)
	if err != nil {
		return false, fmt.Errorf("verify with key %q: %w", keyName, err)
	}
	return ok, nil
}

func (s *Service) client(ctx context.Context, keyName string) (CryptoClient, error) {
	if keyName == "" {
		return nil, ErrMissingKeyName
	}
	if client, ok := s.clients.Get(keyName); ok {
		return client, nil
	}
	client, err := s.keys.CryptoClient(ctx, keyName)
	if err != nil {
		return nil, errors.Join(ErrKeyServiceUnavailable, err)
	}
	// Last writer wins on a concurrent populate; clients are stateless
	// handles so duplicates are harmless.
	s.clients.Put(keyName, client)
	return client, nil
}
