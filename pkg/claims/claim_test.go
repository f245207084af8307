package claims_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exosplatform/platformkit/pkg/claims"
)

func TestClaimSet(t *testing.T) {
	t.Parallel()

	t.Run("get returns first value of type", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeWorkOrderID, Value: "1"},
			claims.Claim{Type: claims.TypeWorkOrderID, Value: "2"},
		)

		v, ok := set.Get(claims.TypeWorkOrderID)
		require.True(t, ok)
		assert.Equal(t, "1", v)
		assert.Equal(t, []string{"1", "2"}, set.GetAll(claims.TypeWorkOrderID))
	})

	t.Run("replace removes then adds", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeServicerTenant, Value: "10"},
			claims.Claim{Type: claims.TypeServicerTenant, Value: "11"},
			claims.Claim{Type: claims.TypeName, Value: "alice"},
		)

		out := set.Replace(claims.TypeServicerTenant, "42")
		assert.Equal(t, []string{"42"}, out.GetAll(claims.TypeServicerTenant))
		assert.Equal(t, "alice", out.Username())
		// Original set untouched.
		assert.Len(t, set.GetAll(claims.TypeServicerTenant), 2)
	})

	t.Run("int64 parsing", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeTenantIdentifier, Value: " 42 "},
			claims.Claim{Type: claims.TypeLOB, Value: "not-a-number"},
		)

		n, ok := set.Int64(claims.TypeTenantIdentifier)
		require.True(t, ok)
		assert.Equal(t, int64(42), n)

		_, ok = set.Int64(claims.TypeLOB)
		assert.False(t, ok)

		_, ok = set.Int64(claims.TypeVendor)
		assert.False(t, ok)
	})

	t.Run("exosadmin distinguishes absent from false", func(t *testing.T) {
		t.Parallel()

		absent := claims.New(claims.Claim{Type: claims.TypeName, Value: "alice"})
		v, present := absent.ExosAdmin()
		assert.False(t, v)
		assert.False(t, present)
		assert.False(t, absent.IsExosAdmin())

		explicit := claims.New(claims.Claim{Type: claims.TypeExosAdmin, Value: "false"})
		v, present = explicit.ExosAdmin()
		assert.False(t, v)
		assert.True(t, present)

		admin := claims.New(claims.Claim{Type: claims.TypeExosAdmin, Value: "true"})
		assert.True(t, admin.IsExosAdmin())
	})
}

func TestProject(t *testing.T) {
	t.Parallel()

	t.Run("vendor projection", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeName, Value: "alice"},
			claims.Claim{Type: claims.TypeTenantType, Value: "Vendor"}, // case-insensitive on the wire
			claims.Claim{Type: claims.TypeTenantIdentifier, Value: "10"},
			claims.Claim{Type: claims.TypeSubContractor, Value: "5"},
			claims.Claim{Type: claims.TypeSubContractor, Value: "6"},
			claims.Claim{Type: claims.TypeIsManager, Value: "true"},
		)

		id := claims.Project(set)
		assert.Equal(t, claims.TenantTypeVendor, id.Type)
		assert.Equal(t, int64(10), id.TenantID)
		assert.Equal(t, []int64{5, 6}, id.AssociatedIDs)
		assert.True(t, id.IsManager)
		assert.Equal(t, "alice", id.Username)
	})

	t.Run("servicer projection uses servicer tenant claim and groups", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeTenantType, Value: "servicer"},
			claims.Claim{Type: claims.TypeServicerTenant, Value: "7"},
			claims.Claim{Type: claims.ServicerGroupPrefix + "inspection", Value: "101"},
			claims.Claim{Type: claims.ServicerGroupPrefix + "repair", Value: "102"},
		)

		id := claims.Project(set)
		assert.Equal(t, claims.TenantTypeServicer, id.Type)
		assert.Equal(t, int64(7), id.TenantID)
		assert.Equal(t, []int64{101, 102}, id.ServicerGroupIDs)
		assert.Equal(t, id.ServicerGroupIDs, id.AssociatedIDs)
	})

	t.Run("unknown tenant type leaves identity at zero", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeName, Value: "svc"},
			claims.Claim{Type: claims.TypeTenantType, Value: "mystery"},
			claims.Claim{Type: claims.TypeTenantIdentifier, Value: "99"},
		)

		id := claims.Project(set)
		assert.Equal(t, claims.TenantTypeUnknown, id.Type)
		assert.Zero(t, id.TenantID)
		assert.Empty(t, id.AssociatedIDs)
	})
}

func TestWorkOrderTenancy(t *testing.T) {
	t.Parallel()

	t.Run("claims round trip", func(t *testing.T) {
		t.Parallel()

		w := claims.WorkOrderTenancy{
			WorkOrderID:                 123,
			ServicerGroupTenantID:       1,
			VendorTenantID:              10,
			SubContractorTenantID:       5,
			ClientTenantID:              20,
			SubClientTenantID:           21,
			SourceSystemWorkOrderNumber: "WO-123",
		}

		got := claims.WorkOrderTenancyFromClaims(w.Claims())
		assert.Equal(t, w, got)
	})

	t.Run("merge overwrites stale work-order claims", func(t *testing.T) {
		t.Parallel()

		set := claims.New(
			claims.Claim{Type: claims.TypeName, Value: "alice"},
			claims.Claim{Type: claims.TypeWorkOrderID, Value: "999"},
			claims.Claim{Type: claims.TypeWOVendorTenant, Value: "77"},
		)

		merged := claims.MergeWorkOrderTenancy(set, claims.WorkOrderTenancy{
			WorkOrderID:    123,
			VendorTenantID: 10,
		})

		assert.Equal(t, []string{"123"}, merged.GetAll(claims.TypeWorkOrderID))
		assert.Equal(t, []string{"10"}, merged.GetAll(claims.TypeWOVendorTenant))
		assert.Equal(t, "alice", merged.Username())
	})
}
