package handler

import (
	"log/slog"
	"net/http"

	"cloudstore/internal/domain/services"
	"cloudstore/internal/httputil"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	identityService services.IdentityService
	logger          *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(identityService services.IdentityService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		identityService: identityService,
		logger:          logger,
	}
}

// GetProfile returns the caller's profile
// GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.identityService.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile replaces first and last name. Unknown fields are rejected;
// email may be sent back but is never changed.
// PUT /api/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := httputil.ParseJSONStrict(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.identityService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}
