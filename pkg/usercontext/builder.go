package usercontext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/exosplatform/platformkit/pkg/claims"
	"github.com/exosplatform/platformkit/pkg/claimscache"
	"github.com/exosplatform/platformkit/pkg/credential"
	"github.com/exosplatform/platformkit/pkg/tenancy"
	"github.com/exosplatform/platformkit/pkg/tenantheader"
	"github.com/exosplatform/platformkit/pkg/workorder"
)

// Builder constructs the per-request principal: credential arbitration,
// claims resolution through the signed cache, tenant-switch handling,
// servicer features and work-order tenancy overrides, composed in that
// order. Later steps depend on earlier output, so the pipeline is
// strictly sequential.
type Builder struct {
	arbiter     *credential.Arbiter
	cache       *claimscache.Cache
	workOrders  workorder.Client
	headerCodec *tenantheader.Codec
	log         *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithWorkOrderClient enables work-order tenancy resolution through the
// order-management service.
func WithWorkOrderClient(c workorder.Client) Option {
	return func(b *Builder) { b.workOrders = c }
}

// WithInboundTenantHeader enables decoding of the signed inbound
// work-order tenant header. When enabled, a verifying header replaces the
// order-management round-trip; a failing one aborts the request.
func WithInboundTenantHeader(codec *tenantheader.Codec) Option {
	return func(b *Builder) { b.headerCodec = codec }
}

// NewBuilder creates a user-context builder.
func NewBuilder(arbiter *credential.Arbiter, cache *claimscache.Cache, opts ...Option) (*Builder, error) {
	if arbiter == nil || cache == nil {
		return nil, ErrMissingDependency
	}
	b := &Builder{
		arbiter: arbiter,
		cache:   cache,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build resolves the caller's full context for one request. principal is
// the claim set an upstream authentication handler may already have
// attached; it may be nil.
func (b *Builder) Build(ctx context.Context, r *http.Request, principal claims.ClaimSet) (*Principal, error) {
	cred, err := b.arbiter.Resolve(r, principal)
	if err != nil {
		return nil, errors.Join(ErrUnauthorized, err)
	}

	username := principal.Username()
	if username == "" && cred.Scheme == credential.SchemeBearer {
		if sub, err := credential.BearerSubject(cred.LookupToken); err == nil {
			username = sub
		}
	}

	requestedTenant := requestedServicerTenant(r)

	set, fromCache, err := b.cache.GetOrBuild(ctx, cred.LookupToken, username, requestedTenant)
	if err != nil {
		if errors.Is(err, claimscache.ErrTokenRevoked) {
			return nil, errors.Join(ErrUnauthorized, err)
		}
		return nil, err
	}

	// A fresh user-service fetch was already scoped to the requested
	// tenant; only cached claims need the explicit switch re-applied and
	// re-validated.
	if fromCache && requestedTenant > 0 {
		if current, ok := set.Int64(claims.TypeServicerTenant); !ok || current != requestedTenant {
			set, err = tenancy.ApplyTenantSwitch(set, requestedTenant)
			if err != nil {
				return nil, errors.Join(ErrUnauthorized, err)
			}
		}
	}

	set, err = b.cache.AppendServicerFeatures(ctx, set)
	if err != nil {
		return nil, err
	}

	p := &Principal{
		Username:  username,
		Scheme:    cred.Scheme,
		FromCache: fromCache,
	}

	set, p.WorkOrder, err = b.applyWorkOrder(ctx, r, set)
	if err != nil {
		return nil, err
	}

	if p.Username == "" {
		p.Username = set.Username()
	}
	p.Claims = set
	p.Identity = claims.Project(set)
	return p, nil
}

// applyWorkOrder resolves and merges work-order tenancy when the request
// names a work order, preferring a verified signed inbound header over an
// order-management round-trip. The tenancy is recomputed on every request
// and never read from or written to the claims cache.
func (b *Builder) applyWorkOrder(ctx context.Context, r *http.Request, set claims.ClaimSet) (claims.ClaimSet, claims.WorkOrderTenancy, error) {
	workOrderID := requestedWorkOrder(r, set)
	if workOrderID <= 0 {
		return set, claims.WorkOrderTenancy{}, nil
	}

	if b.headerCodec != nil {
		if headerValue := r.Header.Get(tenantheader.HeaderName); headerValue != "" {
			// A present-but-invalid header is a hard security failure,
			// never downgraded to a service lookup.
			t, err := b.headerCodec.Decode(headerValue, workOrderID)
			if err != nil {
				return nil, claims.WorkOrderTenancy{}, errors.Join(ErrUnauthorized, err)
			}
			set = claims.MergeWorkOrderTenancy(set, t)
			set = set.Replace(claims.TypeHeaderWorkOrderID, strconv.FormatInt(workOrderID, 10))
			return set, t, nil
		}
	}

	if b.workOrders == nil {
		return set, claims.WorkOrderTenancy{}, nil
	}

	t, err := b.workOrders.GetWorkOrderTenancy(ctx, workOrderID)
	if err != nil {
		return nil, claims.WorkOrderTenancy{}, fmt.Errorf("resolve work order %d tenancy: %w", workOrderID, err)
	}
	return claims.MergeWorkOrderTenancy(set, t), t, nil
}

// requestedServicerTenant reads an explicit servicer tenant override from
// the request header or query parameter.
func requestedServicerTenant(r *http.Request) int64 {
	v := r.Header.Get(tenantheader.ServicerTenantHeader)
	if v == "" {
		v = r.URL.Query().Get(tenantheader.ServicerTenantHeader)
	}
	if v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// requestedWorkOrder reads the work order a request is scoped to, from
// the workorderid header or an existing claim.
func requestedWorkOrder(r *http.Request, set claims.ClaimSet) int64 {
	if v := r.Header.Get(tenantheader.WorkOrderIDHeader); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	if v := r.URL.Query().Get(tenantheader.WorkOrderIDHeader); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	id, _ := set.Int64(claims.TypeWorkOrderID)
	return id
}
