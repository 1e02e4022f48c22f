package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ar-copilot/ar-copilot/internal/platform/httpx"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// Handler serves client settings endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/client-settings", h.getSettings)
	r.Put("/client-settings", h.putSettings)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		httpx.Fail(w, http.StatusBadRequest, "missing_client_id")
		return
	}

	s, err := h.service.Get(r.Context(), scope, clientID)
	if err != nil {
		if errors.Is(err, ErrInvalidClient) {
			httpx.Fail(w, http.StatusBadRequest, "invalid_client_id")
			return
		}
		h.logger.Error("get client settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"settings": s})
}

func (h *Handler) putSettings(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "validation_failed")
		return
	}

	s, err := h.service.Update(r.Context(), scope, in)
	if err != nil {
		if errors.Is(err, ErrInvalidClient) {
			httpx.Fail(w, http.StatusBadRequest, "invalid_client_id")
			return
		}
		h.logger.Error("update client settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"settings": s})
}
