package workorder_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exosplatform/platformkit/pkg/claims"
	"github.com/exosplatform/platformkit/pkg/trackingid"
	"github.com/exosplatform/platformkit/pkg/workorder"
)

func TestHTTPClient(t *testing.T) {
	t.Parallel()

	t.Run("fetches work order tenancy", func(t *testing.T) {
		t.Parallel()

		want := claims.WorkOrderTenancy{
			WorkOrderID:           123,
			ServicerGroupTenantID: 1,
			VendorTenantID:        10,
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/workorders/123/tenancy", r.URL.Path)
			assert.Equal(t, "req-1", r.Header.Get(trackingid.Header))
			_ = json.NewEncoder(w).Encode(want)
		}))
		defer srv.Close()

		client, err := workorder.NewHTTPClient(workorder.Config{BaseURL: srv.URL})
		require.NoError(t, err)

		ctx := trackingid.WithContext(context.Background(), "req-1")
		got, err := client.GetWorkOrderTenancy(ctx, 123)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client, err := workorder.NewHTTPClient(workorder.Config{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = client.GetWorkOrderTenancy(context.Background(), 999)
		assert.ErrorIs(t, err, workorder.ErrWorkOrderNotFound)
	})

	t.Run("other statuses map to service failure with uri", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client, err := workorder.NewHTTPClient(workorder.Config{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = client.GetWorkOrderTenancy(context.Background(), 123)
		assert.ErrorIs(t, err, workorder.ErrServiceFailure)
		assert.Contains(t, err.Error(), "GET "+srv.URL)
	})

	t.Run("missing base url rejected", func(t *testing.T) {
		t.Parallel()

		_, err := workorder.NewHTTPClient(workorder.Config{})
		assert.ErrorIs(t, err, workorder.ErrMissingBaseURL)
	})
}
