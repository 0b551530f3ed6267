package account

import (
	"errors"
	"net/http"

	"github.com/gabriel-x/ai-app-scaffold/internal/auth"
	"github.com/gabriel-x/ai-app-scaffold/internal/httputil"
	"github.com/gabriel-x/ai-app-scaffold/internal/logging"
	"github.com/gabriel-x/ai-app-scaffold/internal/user"
)

// Handler serves /accounts endpoints. Every route expects auth.Middleware.RequireAuth in front.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UpdateProfileRequest represents the profile update body
type UpdateProfileRequest struct {
	Name *string `json:"name"`
}

// GetProfile returns the caller's profile
// @Summary      Get profile
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.Profile
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} httputil.ErrorResponse "Account not found"
// @Router       /accounts/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Missing token", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "Not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to load profile", "error", err.Error())
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, u.Profile(), http.StatusOK)
}

// UpdateProfile changes the caller's display name
// @Summary      Update profile
// @Description  Set the display name. Surrounding whitespace is trimmed; a blank name is rejected.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "New name"
// @Success      200 {object} user.Profile
// @Failure      400 {object} httputil.ErrorResponse "name required"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} httputil.ErrorResponse "Account not found"
// @Router       /accounts/profile [patch]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Missing token", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid profile update body", "error", err.Error())
		httputil.RespondError(w, "name required", httputil.CodeBadRequest, http.StatusBadRequest)
		return
	}

	u, err := h.service.UpdateName(r.Context(), identity.UserID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			httputil.RespondError(w, "name required", httputil.CodeBadRequest, http.StatusBadRequest)
		case errors.Is(err, user.ErrNotFound):
			httputil.RespondError(w, "Not found", httputil.CodeNotFound, http.StatusNotFound)
		default:
			logger.Error("failed to update profile", "error", err.Error())
			httputil.RespondInternalError(w)
		}
		return
	}

	logger.Info("profile updated", "user_id", u.ID)

	httputil.RespondJSON(w, u.Profile(), http.StatusOK)
}
