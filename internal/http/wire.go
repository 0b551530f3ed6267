package http

import (
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/gabriel-x/ai-app-scaffold/internal/account"
	"github.com/gabriel-x/ai-app-scaffold/internal/auth"
	"github.com/gabriel-x/ai-app-scaffold/internal/config"
	"github.com/gabriel-x/ai-app-scaffold/internal/logging"
	"github.com/gabriel-x/ai-app-scaffold/internal/user"
)

// NewTokenService selects the token implementation named by cfg.TokenFormat.
func NewTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatPaseto:
		return auth.NewPasetoService(cfg.PasetoKey)
	case config.TokenFormatJWT, "":
		return auth.NewJWTService(cfg.JWTSecret)
	default:
		return nil, fmt.Errorf("unsupported token format %q", cfg.TokenFormat)
	}
}

// NewAPI builds the services and handlers on top of store and returns the routed API.
func NewAPI(cfg *config.Config, store *user.Store, logger *logging.Logger) (*chi.Mux, error) {
	tokens, err := NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	authService := auth.NewService(
		store,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		cfg.Auth.AccessTokenDuration,
		cfg.Auth.RefreshTokenDuration,
	)
	accountService := account.NewService(store)

	return NewRouter(cfg, Handlers{
		Auth:    auth.NewHandler(authService),
		Account: account.NewHandler(accountService),
		Guard:   auth.NewMiddleware(tokens),
	}, logger), nil
}
