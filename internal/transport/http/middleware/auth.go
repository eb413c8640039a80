package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"wavegram/internal/httputil"
	"wavegram/internal/token"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// claimsKey is the context key for the verified identity claims.
const claimsKey contextKey = "auth_claims"

// AuthMiddleware validates the bearer token on every protected route.
// On success the verified claims are attached to the request context, so
// handlers read identity from context and never re-decode the header.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteUnauthenticated(w, "Missing authentication token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				httputil.WriteUnauthenticated(w, "Malformed authorization header")
				return
			}

			claims, err := token.Verify(parts[1], jwtSecret)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrExpired):
					httputil.WriteForbidden(w, "Session is over")
				case errors.Is(err, token.ErrInvalid):
					httputil.WriteForbidden(w, "Token is not valid")
				default:
					httputil.WriteUnauthenticated(w, "Authentication failed")
				}
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext returns the verified claims attached by AuthMiddleware.
func GetClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

// GetUserIDFromContext returns the authenticated caller's user ID.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
