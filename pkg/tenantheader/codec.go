package tenantheader

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/exosplatform/platformkit/pkg/claims"
)

// Header names involved in cross-service tenant propagation. Wire-stable.
const (
	HeaderName           = "Exos-Work-Order-Tenant"
	WorkOrderIDHeader    = "workorderid"
	ServicerTenantHeader = "servicertenantidentifier"
	ElevatedRightHeader  = "ElevatedRight"
)

// Codec signs and verifies the work-order tenant propagation header.
// The header value is base64url(payload).base64url(hmac-sha256) over the
// canonical JSON serialization of the tenancy.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec with the given signing secret.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	return &Codec{secret: secret}, nil
}

// Encode serializes and signs a work-order tenancy into a header value.
func (c *Codec) Encode(t claims.WorkOrderTenancy) (string, error) {
	if t.IsZero() {
		return "", ErrEmptyTenancy
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal tenant header: %w", err)
	}
	encoded := base64URLEncode(payload)
	return encoded + "." + c.sign(encoded), nil
}

// Decode verifies and deserializes a header value. expectWorkOrderID is
// the work order the request claims to be about; a positive value that
// does not match the header's embedded work-order id is a hard security
// failure. Callers must treat any Decode error as fatal for the request,
// never as "fall back to unsigned".
func (c *Codec) Decode(headerValue string, expectWorkOrderID int64) (claims.WorkOrderTenancy, error) {
	encoded, sig, found := strings.Cut(headerValue, ".")
	if !found || encoded == "" || sig == "" {
		return claims.WorkOrderTenancy{}, ErrMalformedHeader
	}

	if subtle.ConstantTimeCompare([]byte(sig), []byte(c.sign(encoded))) != 1 {
		return claims.WorkOrderTenancy{}, ErrInvalidSignature
	}

	payload, err := base64URLDecode(encoded)
	if err != nil {
		return claims.WorkOrderTenancy{}, errors.Join(ErrMalformedHeader, err)
	}

	var t claims.WorkOrderTenancy
	if err := json.Unmarshal(payload, &t); err != nil {
		return claims.WorkOrderTenancy{}, errors.Join(ErrMalformedHeader, err)
	}

	if expectWorkOrderID > 0 && t.WorkOrderID != expectWorkOrderID {
		return claims.WorkOrderTenancy{}, fmt.Errorf("%w: header is for work order %d, request is for %d",
			ErrWorkOrderMismatch, t.WorkOrderID, expectWorkOrderID)
	}

	return t, nil
}

func (c *Codec) sign(encoded string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(encoded))
	return base64URLEncode(h.Sum(nil))
}

func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
