package claimscache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/exosplatform/platformkit/pkg/claims"
	"github.com/exosplatform/platformkit/pkg/trackingid"
)

// UserServiceConfig holds the user service settings.
type UserServiceConfig struct {
	// BaseURL is the user service base URL.
	BaseURL string `env:"USER_SERVICE_URL,required"`

	// Timeout bounds each claims fetch.
	Timeout time.Duration `env:"USER_SERVICE_TIMEOUT" envDefault:"10s"`
}

// HTTPUserService fetches authoritative claim sets from the user service.
type HTTPUserService struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPUserService creates a user service client.
func NewHTTPUserService(cfg UserServiceConfig) (*HTTPUserService, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingDependency
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPUserService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetUserClaims fetches the claim set for a username, optionally scoped
// to a servicer tenant. Failures are wrapped once with the request method
// and URI; the underlying error is preserved for retry classification.
func (s *HTTPUserService) GetUserClaims(ctx context.Context, username string, servicerTenantID int64) (claims.ClaimSet, error) {
	u := fmt.Sprintf("%s/api/users/%s/claims", s.baseURL, url.PathEscape(username))
	if servicerTenantID > 0 {
		u += "?servicertenantid=" + strconv.FormatInt(servicerTenantID, 10)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	trackingid.Propagate(ctx, req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", u, resp.StatusCode)
	}

	var out struct {
		Claims claims.ClaimSet `json:"claims"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("GET %s: decode response: %w", u, err)
	}
	return out.Claims, nil
}

// HTTPFeatureService fetches servicer feature claims from the servicer
// service.
type HTTPFeatureService struct {
	baseURL    string
	httpClient *http.Client
}

// FeatureServiceConfig holds the servicer feature service settings.
type FeatureServiceConfig struct {
	// BaseURL is the servicer service base URL.
	BaseURL string `env:"SERVICER_SERVICE_URL,required"`

	// Timeout bounds each feature fetch.
	Timeout time.Duration `env:"SERVICER_SERVICE_TIMEOUT" envDefault:"10s"`
}

// NewHTTPFeatureService creates a servicer feature service client.
func NewHTTPFeatureService(cfg FeatureServiceConfig) (*HTTPFeatureService, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingDependency
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFeatureService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetServicerFeatures fetches the feature claims for a servicer tenant.
func (s *HTTPFeatureService) GetServicerFeatures(ctx context.Context, servicerTenantID int64) (claims.ClaimSet, error) {
	u := fmt.Sprintf("%s/api/servicers/%d/features", s.baseURL, servicerTenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	trackingid.Propagate(ctx, req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", u, resp.StatusCode)
	}

	var out struct {
		Claims claims.ClaimSet `json:"claims"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("GET %s: decode response: %w", u, err)
	}
	return out.Claims, nil
}
