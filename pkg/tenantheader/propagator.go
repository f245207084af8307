package tenantheader

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/exosplatform/platformkit/pkg/claims"
)

// Config holds outbound tenant header settings.
type Config struct {
	Enabled       bool   `env:"TENANT_HEADER_ENABLED" envDefault:"false"` // Enabled gates the signed tenant header exchange.
	SigningSecret string `env:"TENANT_HEADER_SECRET"`                     // SigningSecret signs the propagation header.
	ElevatedRight string `env:"ELEVATED_RIGHT_SIGNATURE"`                 // ElevatedRight is the signature claim value for service-to-service elevated calls.
}

// Propagator attaches the signed work-order tenant header to outbound
// requests. Encoding is fail-open: when a precondition does not hold the
// header is simply omitted and the downstream service re-resolves tenancy
// itself. Decoding (Codec.Decode) stays fail-closed.
type Propagator struct {
	codec         *Codec
	enabled       bool
	elevatedRight string
	log           *slog.Logger
}

// PropagatorOption configures a Propagator.
type PropagatorOption func(*Propagator)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) PropagatorOption {
	return func(p *Propagator) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPropagator creates a propagator from configuration. A missing secret
// with the feature enabled disables the exchange rather than failing
// startup; the degradation is logged once here.
func NewPropagator(cfg Config, opts ...PropagatorOption) *Propagator {
	p := &Propagator{
		enabled:       cfg.Enabled,
		elevatedRight: cfg.ElevatedRight,
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if cfg.Enabled {
		codec, err := NewCodec([]byte(cfg.SigningSecret))
		if err != nil {
			p.enabled = false
			p.log.Warn("tenant header exchange disabled: no signing secret configured")
		} else {
			p.codec = codec
		}
	}
	return p
}

// Apply attaches the signed tenant header to an outbound request when all
// preconditions hold: feature enabled, secret configured, tenant data
// present, and the request's workorderid header matching the tenancy's
// work order. A work-order mismatch omits the header with a warning
// instead of failing the call; omission only forces the downstream
// service to re-resolve, whereas a wrong header would be trusted.
func (p *Propagator) Apply(req *http.Request, t claims.WorkOrderTenancy) {
	if !p.enabled || p.codec == nil || t.IsZero() {
		return
	}

	if outbound := req.Header.Get(WorkOrderIDHeader); outbound != "" {
		id, err := strconv.ParseInt(outbound, 10, 64)
		if err != nil || id != t.WorkOrderID {
			p.log.Warn("tenant header omitted: outbound work order does not match tenancy",
				slog.String("outbound_workorderid", outbound),
				slog.Int64("tenancy_workorderid", t.WorkOrderID))
			return
		}
	} else {
		req.Header.Set(WorkOrderIDHeader, strconv.FormatInt(t.WorkOrderID, 10))
	}

	value, err := p.codec.Encode(t)
	if err != nil {
		p.log.Warn("tenant header omitted: encode failed", slog.Any("error", err))
		return
	}
	req.Header.Set(HeaderName, value)

	if p.elevatedRight != "" {
		req.Header.Set(ElevatedRightHeader, p.elevatedRight)
	}
}

// CopyServicerTenant copies the inbound servicer tenant override header
// through to an outbound request.
func CopyServicerTenant(inbound, outbound *http.Request) {
	if v := inbound.Header.Get(ServicerTenantHeader); v != "" {
		outbound.Header.Set(ServicerTenantHeader, v)
	}
}
