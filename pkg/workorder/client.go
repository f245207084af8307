package workorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/exosplatform/platformkit/pkg/claims"
	"github.com/exosplatform/platformkit/pkg/trackingid"
)

// Client resolves the tenancy context of a work order from the
// order-management service. Results are always fetched fresh per request;
// work-order tenancy is never cached across requests.
type Client interface {
	GetWorkOrderTenancy(ctx context.Context, workOrderID int64) (claims.WorkOrderTenancy, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, workOrderID int64) (claims.WorkOrderTenancy, error)

// GetWorkOrderTenancy calls the function.
func (f ClientFunc) GetWorkOrderTenancy(ctx context.Context, workOrderID int64) (claims.WorkOrderTenancy, error) {
	return f(ctx, workOrderID)
}

// Config holds the order-management service settings.
type Config struct {
	// BaseURL is the order-management service base URL.
	BaseURL string `env:"WORKORDER_SERVICE_URL,required"`

	// Timeout bounds each tenancy lookup.
	Timeout time.Duration `env:"WORKORDER_SERVICE_TIMEOUT" envDefault:"10s"`
}

// HTTPClient is the HTTP implementation of Client.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an order-management client.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetWorkOrderTenancy fetches the tenancy for a work order. Transport and
// status failures are wrapped once with the request method and URI so the
// caller's retry policy can classify them; the underlying error is
// preserved unchanged.
func (c *HTTPClient) GetWorkOrderTenancy(ctx context.Context, workOrderID int64) (claims.WorkOrderTenancy, error) {
	url := fmt.Sprintf("%s/api/workorders/%d/tenancy", c.baseURL, workOrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return claims.WorkOrderTenancy{}, err
	}
	trackingid.Propagate(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return claims.WorkOrderTenancy{}, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return claims.WorkOrderTenancy{}, fmt.Errorf("%w: work order %d", ErrWorkOrderNotFound, workOrderID)
	default:
		return claims.WorkOrderTenancy{}, fmt.Errorf("GET %s: %w: status %d", url, ErrServiceFailure, resp.StatusCode)
	}

	var t claims.WorkOrderTenancy
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return claims.WorkOrderTenancy{}, errors.Join(ErrServiceFailure, err)
	}
	return t, nil
}
