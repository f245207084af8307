package signing

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// VaultConfig configures the Vault transit key service.
type VaultConfig struct {
	// Addr is the Vault server base URL.
	Addr string `env:"SIGNING_VAULT_ADDR,required"`

	// Token authenticates requests to Vault.
	Token string `env:"SIGNING_VAULT_TOKEN,required"`

	// Mount is the transit secrets engine mount path.
	Mount string `env:"SIGNING_VAULT_MOUNT" envDefault:"transit"`

	// Timeout bounds each signing round-trip.
	Timeout time.Duration `env:"SIGNING_VAULT_TIMEOUT" envDefault:"10s"`
}

// VaultKeyService implements KeyService against a Vault transit secrets
// engine. Signing and verification round-trip to Vault on every call, so
// key rotation on the Vault side takes effect without a redeploy.
type VaultKeyService struct {
	addr       string
	token      string
	mount      string
	httpClient *http.Client
}

// NewVaultKeyService creates a Vault transit key service.
func NewVaultKeyService(cfg VaultConfig) (*VaultKeyService, error) {
	if cfg.Addr == "" || cfg.Token == "" {
		return nil, ErrVaultNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	mount := cfg.Mount
	if mount == "" {
		mount = "transit"
	}
	return &VaultKeyService{
		addr:       strings.TrimRight(cfg.Addr, "/"),
		token:      cfg.Token,
		mount:      strings.Trim(mount, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// CryptoClient returns a client bound to the named transit key.
func (s *VaultKeyService) CryptoClient(_ context.Context, keyName string) (CryptoClient, error) {
	if keyName == "" {
		return nil, ErrMissingKeyName
	}
	return &vaultClient{svc: s, keyName: keyName}, nil
}

type vaultClient struct {
	svc     *VaultKeyService
	keyName string
}

func (c *vaultClient) Sign(ctx context.Context, digest []byte) ([]byte, error) {
	var out struct {
		Data struct {
			Signature string `json:"signature"`
		} `json:"data"`
	}
	payload := map[string]any{
		"input":     base64.StdEncoding.EncodeToString(digest),
		"prehashed": true,
	}
	path := fmt.Sprintf("%s/sign/%s/sha2-256", c.svc.mount, c.keyName)
	if err := c.svc.post(ctx, path, payload, &out); err != nil {
		return nil, err
	}
	return decodeVaultSignature(out.Data.Signature)
}

func (c *vaultClient) Verify(ctx context.Context, digest, signature []byte) (bool, error) {
	var out struct {
		Data struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}
	payload := map[string]any{
		"input":     base64.StdEncoding.EncodeToString(digest),
		"signature": encodeVaultSignature(signature),
		"prehashed": true,
	}
	path := fmt.Sprintf("%s/verify/%s/sha2-256", c.svc.mount, c.keyName)
	if err := c.svc.post(ctx, path, payload, &out); err != nil {
		return false, err
	}
	return out.Data.Valid, nil
}

func (s *VaultKeyService) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.addr+"/v1/"+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("X-Vault-Token", s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrKeyServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(ErrKeyServiceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: vault %s returned status %d", ErrKeyServiceUnavailable, path, resp.StatusCode)
	}
	return json.Unmarshal(raw, out)
}

// Vault transit signatures carry a "vault:v{n}:" key-version prefix in
// front of the base64 signature bytes.
const vaultSigPrefix = "vault:v1:"

func encodeVaultSignature(sig []byte) string {
	return vaultSigPrefix + base64.StdEncoding.EncodeToString(sig)
}

func decodeVaultSignature(s string) ([]byte, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 || idx == len(s)-1 {
		return nil, fmt.Errorf("%w: unexpected vault signature format", ErrKeyServiceUnavailable)
	}
	return base64.StdEncoding.DecodeString(s[idx+1:])
}
