package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/PUSHKARDEORE/Finalytics/internal/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFromContext returns the verified identity attached by Middleware.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*auth.Identity)

	return identity, ok
}

// Middleware verifies the request credential and attaches the acting
// identity to the context. The token is read from the x-auth-token header,
// with a Bearer Authorization header accepted as an alternative.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "no token, authorization denied")
			return
		}

		identity, err := h.svc.Verify(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	if token := r.Header.Get("x-auth-token"); token != "" {
		return token
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
