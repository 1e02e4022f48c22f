package chase

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ar-copilot/ar-copilot/internal/billing"
	"github.com/ar-copilot/ar-copilot/internal/platform/httpx"
	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// Handler serves the chase-list endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers chase routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/chase-list", h.getChaseList)
}

func (h *Handler) getChaseList(w http.ResponseWriter, r *http.Request) {
	scope := shared.ScopeFromContext(r.Context())
	today := time.Now().UTC()

	items, err := h.service.Build(r.Context(), scope, today)
	if err != nil {
		var limitErr *billing.LimitError
		if errors.As(err, &limitErr) {
			httpx.JSON(w, http.StatusPaymentRequired, map[string]any{
				"ok":            false,
				"error":         "invoice_limit_exceeded",
				"plan":          limitErr.Plan,
				"limit":         limitErr.Limit,
				"open_invoices": limitErr.OpenInvoices,
			})
			return
		}
		h.logger.Error("build chase list", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{
		"date":       today.Format(dateLayout),
		"chase_list": items,
	})
}
