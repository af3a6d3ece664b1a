// Package middleware holds HTTP middleware shared across transport routers.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "sirpo/pkg/domain-errors"
	"sirpo/pkg/platform/httputil"
)

// Claims are the bearer-token facts the middleware exposes to handlers.
type Claims struct {
	Subject string
	Kind    string
	Role    string
}

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (Claims, error)
}

type contextKeyClaims struct{}

// ContextKeyClaims is exported for use in handlers.
var ContextKeyClaims = contextKeyClaims{}

// GetClaims retrieves the authenticated token claims from the context. The
// zero value means the request did not pass RequireAuth.
func GetClaims(ctx context.Context) Claims {
	claims, ok := ctx.Value(ContextKeyClaims).(Claims)
	if !ok {
		return Claims{}
	}
	return claims
}

// RequireAuth rejects requests without a valid bearer token. Valid claims
// are stored on the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(r.Context(), "unauthorized access - missing token",
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"path", r.URL.Path,
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
