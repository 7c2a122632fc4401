package handler

import (
	"log/slog"
	"net/http"

	"github.com/getcovered/userapi-go/internal/model"
	"github.com/getcovered/userapi-go/internal/service"
)

// GeneratorHandler handles HTTP requests for password suggestions.
type GeneratorHandler struct {
	service *service.GeneratorService
	logger  *slog.Logger
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService, logger *slog.Logger) *GeneratorHandler {
	return &GeneratorHandler{service: svc, logger: logger}
}

// HandleSuggest handles POST /api/password/suggest requests. The body is
// optional.
func (h *GeneratorHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	resp, err := h.service.Suggest(req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
