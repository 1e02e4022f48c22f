package clients

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ar-copilot/ar-copilot/internal/platform/httpx"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// Handler serves client endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers client routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/clients", h.listClients)
	r.Post("/clients", h.createClient)
	r.Delete("/clients/{id}", h.deleteClient)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	items, err := h.service.List(r.Context(), scope)
	if err != nil {
		h.logger.Error("list clients", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"clients": items})
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "validation_failed")
		return
	}

	client, err := h.service.Create(r.Context(), scope, in)
	if err != nil {
		h.logger.Error("create client", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusCreated, map[string]any{"client": client})
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), scope, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, "not_found")
			return
		}
		h.logger.Error("delete client", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, nil)
}
