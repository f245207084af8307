package signing

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
)

// LocalKeyService is an in-process KeyService holding RSA private keys in
// memory. It exists for development and tests; production deployments use
// a real key-management service so key material never lives in the
// application process.
type LocalKeyService struct {
	keys map[string]*rsa.PrivateKey
}

// NewLocalKeyService creates a local key service with the given keys.
func NewLocalKeyService(keys map[string]*rsa.PrivateKey) *LocalKeyService {
	return &LocalKeyService{keys: keys}
}

// GenerateLocalKeyService creates a local key service with freshly
// generated 2048-bit keys for each of the given names.
func GenerateLocalKeyService(keyNames ...string) (*LocalKeyService, error) {
	keys := make(map[string]*rsa.PrivateKey, len(keyNames))
	for _, name := range keyNames {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("generate key %q: %w", name, err)
		}
		keys[name] = key
	}
	return &LocalKeyService{keys: keys}, nil
}

// CryptoClient returns a client for the named key.
func (s *LocalKeyService) CryptoClient(_ context.Context, keyName string) (CryptoClient, error) {
	key, ok := s.keys[keyName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, keyName)
	}
	return &localClient{key: key}, nil
}

type localClient struct {
	key *rsa.PrivateKey
}

func (c *localClient) Sign(_ context.Context, digest []byte) ([]byte, error) {
	return rsa.SignPKCS1v15(rand.Reader, c.key, crypto.SHA256, digest)
}

func (c *localClient) Verify(_ context.Context, digest, signature []byte) (bool, error) {
	err := rsa.VerifyPKCS1v15(&c.key.PublicKey, crypto.SHA256, digest, signature)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, rsa.ErrVerification) {
		return false, nil
	}
	return false, err
}
