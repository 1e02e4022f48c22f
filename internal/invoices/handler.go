package invoices

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ar-copilot/ar-copilot/internal/platform/httpx"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// Handler serves invoice endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	importer  *Importer
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, importer *Importer) *Handler {
	return &Handler{logger: logger, service: service, importer: importer, validator: validator.New()}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.listInvoices)
	r.Post("/invoices", h.createInvoice)
	r.Patch("/invoices", h.updateInvoice)
	r.Post("/invoices/import", h.importInvoices)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	filter := ListFilter{
		Status:   r.URL.Query().Get("status"),
		ClientID: r.URL.Query().Get("client_id"),
	}
	if filter.Status != "" && !Status(filter.Status).Valid() {
		httpx.Fail(w, http.StatusBadRequest, "invalid_status")
		return
	}

	items, err := h.service.List(r.Context(), scope, filter)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"invoices": items})
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
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

	inv, err := h.service.Create(r.Context(), scope, in)
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusCreated, map[string]any{"invoice": inv})
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
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

	inv, err := h.service.Update(r.Context(), scope, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNothingToUpdate):
			httpx.Fail(w, http.StatusBadRequest, "nothing_to_update")
		case errors.Is(err, ErrNotFound):
			httpx.Fail(w, http.StatusNotFound, "not_found")
		default:
			h.logger.Error("update invoice", slog.Any("error", err))
			httpx.RespondError(w, err)
		}
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"invoice": inv})
}

func (h *Handler) importInvoices(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())

	result, err := h.importer.ImportCSV(r.Context(), scope, r.Body)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_csv")
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{
		"created": result.Created,
		"errors":  result.Errors,
	})
}
