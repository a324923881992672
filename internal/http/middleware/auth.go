package middleware

import (
	"context"
	"net/http"
	"strings"

	"picsync/backend/internal/auth"
)

type contextKey string

const clientIDKey contextKey = "client_id"

func ClientIDFromContext(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(clientIDKey).(string)
	return val, ok && val != ""
}

// AuthMiddleware requires a bearer token signed with secret. An empty secret
// turns authentication off.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing Authorization")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, "invalid Authorization")
				return
			}
			claims, err := auth.ParseAccessToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), clientIDKey, claims.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
