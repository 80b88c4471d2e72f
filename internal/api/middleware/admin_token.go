package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/lcac-club/clubsite/internal/api"
	"github.com/lcac-club/clubsite/internal/domain"
)

// AdminTokenHeader carries the shared admin secret on write requests.
const AdminTokenHeader = "X-Admin-Token"

// AdminTokenAuth rejects requests whose token does not exactly match
// the configured secret. An empty secret disables the gated routes
// entirely. Authorization runs before any payload or name validation.
func AdminTokenAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				api.Error(w, api.DomainErrorToHTTP(domain.ErrNoAdminToken), "admin token not configured")
				return
			}

			provided := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				api.Error(w, api.DomainErrorToHTTP(domain.ErrInvalidAdminToken), "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
