package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ar-copilot/ar-copilot/internal/auth"
	"github.com/ar-copilot/ar-copilot/internal/chase"
	"github.com/ar-copilot/ar-copilot/internal/clients"
	"github.com/ar-copilot/ar-copilot/internal/followups"
	"github.com/ar-copilot/ar-copilot/internal/invoices"
	"github.com/ar-copilot/ar-copilot/internal/settings"
	"github.com/ar-copilot/ar-copilot/internal/shared"
	"github.com/ar-copilot/ar-copilot/internal/templates"
	"github.com/ar-copilot/ar-copilot/internal/waitlist"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler      *auth.Handler
	ChaseHandler     *chase.Handler
	TemplatesHandler *templates.Handler
	FollowupsHandler *followups.Handler
	InvoicesHandler  *invoices.Handler
	ClientsHandler   *clients.Handler
	SettingsHandler  *settings.Handler
	WaitlistHandler  *waitlist.Handler
}

// NewRouter constructs the chi.Router. The waitlist stays public; every
// other /api resource sits behind the auth guard.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(r chi.Router) {
		params.WaitlistHandler.MountRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			params.ChaseHandler.MountRoutes(r)
			params.TemplatesHandler.MountRoutes(r)
			params.FollowupsHandler.MountRoutes(r)
			params.InvoicesHandler.MountRoutes(r)
			params.ClientsHandler.MountRoutes(r)
			params.SettingsHandler.MountRoutes(r)
		})
	})

	return r
}
