package templates

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ar-copilot/ar-copilot/internal/chase"
	"github.com/ar-copilot/ar-copilot/internal/platform/httpx"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// Handler serves template listing and previews.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers template routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/templates", h.listTemplates)
	r.Get("/templates/preview", h.previewTemplate)
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	stage := r.URL.Query().Get("stage")
	tone := r.URL.Query().Get("tone")
	if stage != "" && !chase.Stage(stage).Valid() {
		httpx.Fail(w, http.StatusBadRequest, "invalid_stage")
		return
	}

	items, err := h.service.List(r.Context(), scope, stage, tone)
	if err != nil {
		h.logger.Error("list templates", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"templates": items})
}

func (h *Handler) previewTemplate(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	q := r.URL.Query()
	invoiceID := q.Get("invoice_id")
	stage := chase.Stage(q.Get("stage"))
	tone := q.Get("tone")

	if invoiceID == "" {
		httpx.Fail(w, http.StatusBadRequest, "missing_invoice_id")
		return
	}
	if !stage.Valid() {
		httpx.Fail(w, http.StatusBadRequest, "invalid_stage")
		return
	}

	msg, err := h.service.Preview(r.Context(), scope, invoiceID, stage, tone, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, chase.ErrNotFound):
			httpx.Fail(w, http.StatusNotFound, "invoice_not_found")
		case errors.Is(err, ErrNotFound):
			httpx.JSON(w, http.StatusNotFound, map[string]any{
				"ok":    false,
				"error": "template_not_found",
				"stage": stage,
				"tone":  tone,
			})
		default:
			h.logger.Error("preview template", slog.Any("error", err))
			httpx.RespondError(w, err)
		}
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{
		"subject": msg.Subject,
		"body":    msg.Body,
	})
}
