package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gabriel-x/ai-app-scaffold/internal/account"
	"github.com/gabriel-x/ai-app-scaffold/internal/auth"
	"github.com/gabriel-x/ai-app-scaffold/internal/config"
	"github.com/gabriel-x/ai-app-scaffold/internal/httputil"
	"github.com/gabriel-x/ai-app-scaffold/internal/logging"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth    *auth.Handler
	Account *account.Handler
	Guard   *auth.Middleware
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(corsOptions(cfg.Server.AllowedOrigins)))
	}

	r.Use(SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(Recoverer)
	r.Use(middleware.Compress(5))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/index.html")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	api := func(r chi.Router) {
		if cfg.Server.BasePath != "" {
			r.Get("/health", handleHealth)
		}

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)

			r.With(h.Guard.RequireAuth).Get("/me", h.Auth.Me)
		})

		// Account routes (protected)
		r.Route("/accounts", func(r chi.Router) {
			r.Use(h.Guard.RequireAuth)
			r.Get("/profile", h.Account.GetProfile)
			r.Patch("/profile", h.Account.UpdateProfile)
		})
	}

	if cfg.Server.BasePath == "" {
		r.Group(api)
	} else {
		r.Route(cfg.Server.BasePath, api)
	}

	return r
}

func corsOptions(origins []string) cors.Options {
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
			break
		}
	}

	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		// credentials cannot be combined with a wildcard origin
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, "Not found", httputil.CodeNotFound, http.StatusNotFound)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, "Method not allowed", httputil.CodeMethodNotAllowed, http.StatusMethodNotAllowed)
}
