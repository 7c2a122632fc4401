package handler

import (
	"log/slog"
	"net/http"

	"github.com/getcovered/userapi-go/internal/middleware"
	"github.com/getcovered/userapi-go/internal/model"
	"github.com/getcovered/userapi-go/internal/service"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	service *service.ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{service: svc, logger: logger}
}

// HandleGetProfile handles GET /api/profile requests.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, service.ErrUnauthenticated)
		return
	}

	resp, err := h.service.GetProfile(r.Context(), token)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateProfile handles PUT /api/profile requests.
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, service.ErrUnauthenticated)
		return
	}

	var req model.UpdateProfileRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), token, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
