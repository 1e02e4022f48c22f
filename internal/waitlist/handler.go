package waitlist

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ar-copilot/ar-copilot/internal/platform/httpx"
)

// Handler serves the public waitlist endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers waitlist routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/waitlist", h.signup)
	r.Get("/waitlist", h.count)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var in SignupInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_email")
		return
	}

	entry, err := h.service.Signup(r.Context(), in)
	if err != nil {
		// Signing up twice is not an error worth surfacing.
		if errors.Is(err, ErrDuplicate) {
			httpx.OK(w, http.StatusOK, map[string]any{"message": "already signed up"})
			return
		}
		h.logger.Error("waitlist signup", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusCreated, map[string]any{"signup": entry})
}

func (h *Handler) count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.logger.Error("waitlist count", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.OK(w, http.StatusOK, map[string]any{"count": count})
}
