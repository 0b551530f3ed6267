package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gabriel-x/ai-app-scaffold/internal/httputil"
	"github.com/gabriel-x/ai-app-scaffold/internal/logging"
	"github.com/gabriel-x/ai-app-scaffold/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new account. The password hash is never returned.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} httputil.DataResponse{data=user.Profile}
// @Failure      400 {object} httputil.ErrorResponse "BAD_REQUEST or ALREADY_EXISTS"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := httputil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("invalid registration request", "error", err.Error())
		httputil.RespondError(w, "Invalid payload", httputil.CodeBadRequest, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	var name string
	if req.Name != nil {
		name = *req.Name
	}

	newUser, err := h.service.Register(r.Context(), req.Email, req.Password, name)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			httputil.RespondError(w, "Email exists", httputil.CodeAlreadyExists, http.StatusBadRequest)
			return
		}
		logger.Error("registration failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	logger.Info("user registered successfully", "user_id", newUser.ID)

	httputil.RespondData(w, newUser.Profile(), http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive access and refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthTokens
// @Failure      400 {object} httputil.ErrorResponse "Invalid payload"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := httputil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("invalid login request", "error", err.Error())
		httputil.RespondError(w, "Invalid payload", httputil.CodeBadRequest, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	tokens, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondError(w, "Invalid credentials", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	logger.Info("user logged in successfully")

	httputil.RespondJSON(w, tokens, http.StatusOK)
}

// Refresh handles access token refresh
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new access token. The refresh token is returned unchanged.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200 {object} AuthTokens
// @Failure      401 {object} httputil.ErrorResponse "Invalid refresh token"
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RefreshRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid refresh request body", "error", err.Error())
	}

	refreshToken := strings.TrimSpace(req.RefreshToken)
	if refreshToken == "" {
		httputil.RespondError(w, "Invalid refresh token", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	tokens, err := h.service.RefreshAccessToken(r.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken) || errors.Is(err, ErrNotRefreshToken) {
			logger.Warn("token refresh failed", "error", err.Error())
			httputil.RespondError(w, "Invalid refresh token", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}
		logger.Error("token refresh failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	logger.Info("access token refreshed successfully")

	httputil.RespondJSON(w, tokens, http.StatusOK)
}

// Me returns the authenticated user
// @Summary      Current user
// @Description  Resolve the bearer token to the user it was issued for
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.Profile
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token, or unknown user"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Missing token", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	u, err := h.service.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("token subject has no account", "user_id", identity.UserID)
			httputil.RespondError(w, "Not found", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}
		logger.Error("failed to load current user", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, u.Profile(), http.StatusOK)
}
