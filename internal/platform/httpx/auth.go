package httpx

import (
	"context"
	"net/http"

	"github.com/tair/production-costing/pkg/auth"
	"github.com/tair/production-costing/pkg/logger"
)

type claimsKey struct{}

// RequireAuth validates the bearer token on wrapped routes. A disabled
// authenticator lets every request through.
func RequireAuth(a *auth.Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if !a.Enabled() {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				RespondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: err.Error()})
				return
			}
			claims, err := a.ValidateToken(token)
			if err != nil {
				logger.Warn(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Rejected token")
				RespondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "invalid token"})
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// ClaimsFrom returns the authenticated caller, if any.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}
