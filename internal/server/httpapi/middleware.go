package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/fluxpad/fluxpad/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// userIDFromContext returns the subject stored by accessTokenMiddleware.
func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// accessTokenMiddleware validates the bearer access token and stores its
// subject in the request context. It does NOT resolve the subject in the
// user store; handlers do that, so a deleted user's still-valid token fails
// downstream of token validation, not here.
func (s *Server) accessTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := auth.ParseToken(parts[1], auth.TokenKindAccess, s.jwtSecret)
		if err != nil {
			// expired, malformed, bad signature, and wrong-kind tokens are
			// indistinguishable to the caller
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
