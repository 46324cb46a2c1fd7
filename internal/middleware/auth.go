package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"baseware/internal/auth"
	"baseware/internal/logger"
	"baseware/internal/response"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// Authenticate puts the token's principal on the request context. With a nil
// verifier authentication is off and requests run as the system actor.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.SendError(w, http.StatusUnauthorized, "Missing token")
				return
			}
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				response.SendError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			claims, err := verifier.Verify(r.Context(), tokenString)
			switch {
			case errors.Is(err, auth.ErrRevokedToken):
				response.SendError(w, http.StatusUnauthorized, "Token has been revoked")
				return
			case errors.Is(err, auth.ErrInvalidToken):
				response.SendError(w, http.StatusUnauthorized, "Invalid token")
				return
			case err != nil:
				slog.ErrorContext(r.Context(), "token verification failed", "error", err)
				response.SendError(w, http.StatusInternalServerError, "Error checking token")
				return
			}

			principal := claims.Principal()
			ctx := auth.WithPrincipal(r.Context(), principal)
			ctx = logger.WithLogFields(ctx, logger.LogFields{Actor: auth.Actor(ctx)})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
