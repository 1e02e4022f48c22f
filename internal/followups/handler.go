package followups

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ar-copilot/ar-copilot/internal/platform/httpx"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// Handler serves follow-up endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers follow-up routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/followups", h.recordFollowup)
	r.Get("/followups", h.listFollowups)
}

func (h *Handler) recordFollowup(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	var in RecordInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "validation_failed")
		return
	}

	ev, err := h.service.Record(r.Context(), scope, in)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			httpx.Fail(w, http.StatusNotFound, "invoice_not_found")
			return
		}
		h.logger.Error("record followup", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusCreated, map[string]any{"followup": ev})
}

func (h *Handler) listFollowups(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	invoiceID := r.URL.Query().Get("invoice_id")
	if invoiceID == "" {
		httpx.Fail(w, http.StatusBadRequest, "missing_invoice_id")
		return
	}

	events, err := h.service.List(r.Context(), scope, invoiceID)
	if err != nil {
		h.logger.Error("list followups", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"followups": events})
}
