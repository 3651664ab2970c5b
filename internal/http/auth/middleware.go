package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/medistock/internal/auth"
)

type contextKey struct{}

var claimsKey contextKey

// Authenticator validates the bearer token and attaches its claims to the
// request context.
func Authenticator(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "authorization header required", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				http.Error(w, "bearer token required", http.StatusUnauthorized)
				return
			}

			claims, err := svc.ValidateToken(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// RequireAdmin rejects requests whose role may not edit. The stores stay
// role-agnostic; this is the single gate at the boundary.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !RoleFromContext(r.Context()).CanEdit() {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RoleFromContext returns the authenticated role, or the empty role when the
// request never passed the Authenticator.
func RoleFromContext(ctx context.Context) auth.Role {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	if !ok {
		return ""
	}

	return claims.Role
}
