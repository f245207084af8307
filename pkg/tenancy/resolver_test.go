package tenancy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exosplatform/platformkit/pkg/claims"
	"github.com/exosplatform/platformkit/pkg/tenancy"
)

func TestBuildFilter(t *testing.T) {
	t.Parallel()

	t.Run("sentinel caller matches everything", func(t *testing.T) {
		t.Parallel()

		for _, tt := range []claims.TenantType{
			claims.TenantTypeExos,
			claims.TenantTypeServicer,
			claims.TenantTypeVendor,
			claims.TenantTypeSubContractor,
			claims.TenantTypeMasterClient,
			claims.TenantTypeSubClient,
		} {
			match := tenancy.BuildFilter(tt, tenancy.FullAccessAll, nil)
			assert.True(t, match(tenancy.Target{VendorTenantID: 99, ClientTenantID: 98, ServicerTenantID: 97}),
				"tenant type %s", tt)

			match = tenancy.BuildFilter(tt, tenancy.FullAccessInternal, nil)
			assert.True(t, match(tenancy.Target{VendorTenantID: 1}), "tenant type %s", tt)
		}
	})

	t.Run("double sentinel target matches for every caller", func(t *testing.T) {
		t.Parallel()

		match := tenancy.BuildFilter(claims.TenantTypeVendor, 10, nil)
		assert.True(t, match(tenancy.Target{
			VendorTenantID:        tenancy.FullAccessAll,
			SubContractorTenantID: tenancy.FullAccessInternal,
		}))
	})

	t.Run("vendor without sub-vendors matches own rows only", func(t *testing.T) {
		t.Parallel()

		// Username alice, vendor 10, no sub-vendor claims.
		match := tenancy.BuildFilter(claims.TenantTypeVendor, 10, nil)

		assert.True(t, match(tenancy.Target{VendorTenantID: 10}))
		assert.True(t, match(tenancy.Target{
			VendorTenantID:        tenancy.FullAccessAll,
			SubContractorTenantID: tenancy.FullAccessAll,
		}))
		assert.False(t, match(tenancy.Target{VendorTenantID: 11}))
		assert.False(t, match(tenancy.Target{
			VendorTenantID:        tenancy.FullAccessAll,
			SubContractorTenantID: 5,
		}))
	})

	t.Run("vendor with sub-vendors matches associated rows through sentinel", func(t *testing.T) {
		t.Parallel()

		match := tenancy.BuildFilter(claims.TenantTypeVendor, 10, []int64{5, 6})

		assert.True(t, match(tenancy.Target{VendorTenantID: 10}))
		assert.True(t, match(tenancy.Target{
			VendorTenantID:        tenancy.FullAccessAll,
			SubContractorTenantID: 5,
		}))
		assert.False(t, match(tenancy.Target{
			VendorTenantID:        tenancy.FullAccessAll,
			SubContractorTenantID: 7,
		}))
		assert.False(t, match(tenancy.Target{VendorTenantID: 11, SubContractorTenantID: 5}))
	})

	t.Run("hierarchical pairs are symmetric", func(t *testing.T) {
		t.Parallel()

		sub := tenancy.BuildFilter(claims.TenantTypeSubContractor, 5, []int64{10})
		assert.True(t, sub(tenancy.Target{SubContractorTenantID: 5}))
		assert.True(t, sub(tenancy.Target{
			SubContractorTenantID: tenancy.FullAccessAll,
			VendorTenantID:        10,
		}))
		assert.False(t, sub(tenancy.Target{SubContractorTenantID: 6}))

		master := tenancy.BuildFilter(claims.TenantTypeMasterClient, 20, []int64{21})
		assert.True(t, master(tenancy.Target{ClientTenantID: 20}))
		assert.True(t, master(tenancy.Target{
			ClientTenantID:    tenancy.FullAccessAll,
			SubClientTenantID: 21,
		}))
		assert.False(t, master(tenancy.Target{ClientTenantID: 22}))
	})

	t.Run("unknown tenant type matches nothing", func(t *testing.T) {
		t.Parallel()

		match := tenancy.BuildFilter(claims.TenantTypeUnknown, 0, nil)
		assert.False(t, match(tenancy.Target{}))
		assert.False(t, match(tenancy.Target{VendorTenantID: tenancy.FullAccessAll}))
	})
}

func TestFilterFor(t *testing.T) {
	t.Parallel()

	t.Run("system caller bypasses tenancy", func(t *testing.T) {
		t.Parallel()

		match := tenancy.FilterFor(claims.TenantIdentity{SystemCaller: true})
		assert.True(t, match(tenancy.Target{VendorTenantID: 42}))
	})

	t.Run("unknown non-system caller sees nothing", func(t *testing.T) {
		t.Parallel()

		match := tenancy.FilterFor(claims.TenantIdentity{})
		assert.False(t, match(tenancy.Target{VendorTenantID: 42}))
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	allowedSet := claims.New(
		claims.Claim{Type: claims.TypeTenantType, Value: "servicer"},
		claims.Claim{Type: claims.TypeServicerTenant, Value: "1"},
		claims.Claim{Type: claims.TypeAssociatedServicer, Value: "2"},
		claims.Claim{Type: claims.TypeAssociatedServicer, Value: "3"},
	)

	t.Run("allows associated tenant", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, tenancy.Validate(allowedSet, 2))
	})

	t.Run("denies unassociated tenant for servicer and exos callers", func(t *testing.T) {
		t.Parallel()

		for _, tt := range []string{"exos", "servicer"} {
			set := allowedSet.Replace(claims.TypeTenantType, tt)
			err := tenancy.Validate(set, 99)
			assert.ErrorIs(t, err, tenancy.ErrTenantSwitchDenied, "tenant type %s", tt)
		}
	})
}

func TestApplyTenantSwitch(t *testing.T) {
	t.Parallel()

	t.Run("replaces servicer tenant claim for servicer caller", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeTenantType, Value: "servicer"},
			claims.Claim{Type: claims.TypeServicerTenant, Value: "1"},
			claims.Claim{Type: claims.TypeAssociatedServicer, Value: "2"},
		)

		out, err := tenancy.ApplyTenantSwitch(set, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, out.GetAll(claims.TypeServicerTenant))
	})

	t.Run("replaces generic tenant claim for other callers", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeTenantType, Value: "vendor"},
			claims.Claim{Type: claims.TypeTenantIdentifier, Value: "10"},
			claims.Claim{Type: claims.TypeAssociatedServicer, Value: "4"},
		)

		out, err := tenancy.ApplyTenantSwitch(set, 4)
		require.NoError(t, err)
		assert.Equal(t, []string{"4"}, out.GetAll(claims.TypeTenantIdentifier))
	})

	t.Run("never downgrades on denial", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeTenantType, Value: "servicer"},
			claims.Claim{Type: claims.TypeServicerTenant, Value: "1"},
		)

		out, err := tenancy.ApplyTenantSwitch(set, 9)
		assert.ErrorIs(t, err, tenancy.ErrTenantSwitchDenied)
		assert.Nil(t, out)
	})
}
