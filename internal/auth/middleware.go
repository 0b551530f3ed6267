package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/gabriel-x/ai-app-scaffold/internal/httputil"
	"github.com/gabriel-x/ai-app-scaffold/internal/logging"
)

const bearerPrefix = "Bearer "

// Identity is the authenticated caller attached to a request by RequireAuth.
type Identity struct {
	UserID uuid.UUID
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the identity stored by RequireAuth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth is a middleware that validates the bearer token
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			httputil.RespondError(w, "Missing token", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}
		token := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			logger.Warn("bearer token rejected", "error", err.Error())
			httputil.RespondError(w, "Invalid token", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			logger.Warn("bearer token has malformed subject")
			httputil.RespondError(w, "Invalid token", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx := WithIdentity(r.Context(), Identity{UserID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
