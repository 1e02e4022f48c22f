package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ar-copilot/ar-copilot/internal/app"
	"github.com/ar-copilot/ar-copilot/internal/auth"
	"github.com/ar-copilot/ar-copilot/internal/billing"
	"github.com/ar-copilot/ar-copilot/internal/chase"
	"github.com/ar-copilot/ar-copilot/internal/clients"
	"github.com/ar-copilot/ar-copilot/internal/followups"
	"github.com/ar-copilot/ar-copilot/internal/invoices"
	"github.com/ar-copilot/ar-copilot/internal/platform/cache"
	"github.com/ar-copilot/ar-copilot/internal/platform/db"
	"github.com/ar-copilot/ar-copilot/internal/settings"
	"github.com/ar-copilot/ar-copilot/internal/shared"
	"github.com/ar-copilot/ar-copilot/internal/templates"
	"github.com/ar-copilot/ar-copilot/internal/waitlist"
	"github.com/ar-copilot/ar-copilot/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, cfg.PGDSN, migrations.FS); err != nil {
			logger.Error("run migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	billingRepo := billing.NewRepository(pool)
	billingService := billing.NewService(billingRepo, billing.PriceIDs{
		Starter: cfg.BillingPriceStarter,
		Studio:  cfg.BillingPriceStudio,
	})

	chaseRepo := chase.NewRepository(pool)
	chaseService := chase.NewService(chaseRepo, billingService)
	chaseHandler := chase.NewHandler(logger, chaseService)

	templatesRepo := templates.NewRepository(pool)
	templatesService := templates.NewService(templatesRepo, chaseRepo)
	templatesHandler := templates.NewHandler(logger, templatesService)

	followupsRepo := followups.NewRepository(pool)
	followupsService := followups.NewService(followupsRepo)
	followupsHandler := followups.NewHandler(logger, followupsService)

	clientsRepo := clients.NewRepository(pool)
	clientsService := clients.NewService(clientsRepo)
	clientsHandler := clients.NewHandler(logger, clientsService)

	invoicesRepo := invoices.NewRepository(pool)
	invoicesService := invoices.NewService(invoicesRepo)
	invoicesImporter := invoices.NewImporter(invoicesService, clientsService)
	invoicesHandler := invoices.NewHandler(logger, invoicesService, invoicesImporter)

	settingsRepo := settings.NewRepository(pool)
	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(logger, settingsService)

	waitlistRepo := waitlist.NewRepository(pool)
	waitlistService := waitlist.NewService(waitlistRepo)
	waitlistHandler := waitlist.NewHandler(logger, waitlistService)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,

		AuthHandler:      authHandler,
		ChaseHandler:     chaseHandler,
		TemplatesHandler: templatesHandler,
		FollowupsHandler: followupsHandler,
		InvoicesHandler:  invoicesHandler,
		ClientsHandler:   clientsHandler,
		SettingsHandler:  settingsHandler,
		WaitlistHandler:  waitlistHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
