package trackingid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the correlation header every inbound and outbound call
// carries.
const Header = "Tracking-Id"

const maxIDLength = 128

var validIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware reads the inbound Tracking-Id, minting a fresh one when the
// header is absent or invalid, and makes it available on the context and
// the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !isValid(id) {
			id = uuid.New().String()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// Propagate copies the context's tracking id onto an outbound request,
// minting one if the context has none. Every external call must carry the
// caller's tracking id for correlation.
func Propagate(ctx context.Context, req *http.Request) {
	if id, ok := FromContext(ctx); ok {
		req.Header.Set(Header, id)
		return
	}
	req.Header.Set(Header, uuid.New().String())
}

func isValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validIDRegex.MatchString(id)
}
