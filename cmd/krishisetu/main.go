package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
	"golang.org/x/crypto/bcrypt"

	"github.com/krishisetu/krishisetu/internal/adapter/auth"
	"github.com/krishisetu/krishisetu/internal/adapter/fsm"
	"github.com/krishisetu/krishisetu/internal/adapter/mail"
	"github.com/krishisetu/krishisetu/internal/adapter/otel"
	"github.com/krishisetu/krishisetu/internal/adapter/river"
	"github.com/krishisetu/krishisetu/internal/adapter/sqlite"
	"github.com/krishisetu/krishisetu/internal/app"
	"github.com/krishisetu/krishisetu/internal/config"

	handler "github.com/krishisetu/krishisetu/internal/adapter/http"
)

const (
	serviceName = "krishisetu"
	version     = "0.1.0"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("krishisetu stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// --- Observability ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			slog.Error("otel shutdown failed", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()

	sender := otel.NewTracingNotifier(mail.New(cfg.SMTP))
	metrics := providers.Metrics

	queue, err := river.Setup(ctx, db, sender)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := queue.Start(ctx); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.Stop(stopCtx); err != nil {
			slog.Error("river shutdown failed", "error", err)
		}
	}()

	publisher := otel.NewMeteringPublisher(otel.NewTracingPublisher(river.NewPublisher(queue)), metrics)
	notifier := otel.NewMeteringNotifier(otel.NewTracingNotifier(river.NewNotifier(queue)), metrics)

	accounts := otel.NewTracingAccountRepository(store.Accounts())
	codes := otel.NewTracingCodeRepository(store.Codes())
	categories := otel.NewTracingCategoryRepository(store.Categories())
	listings := otel.NewTracingListingRepository(store.Listings())
	bookings := otel.NewTracingBookingRepository(store.Bookings())
	profiles := otel.NewTracingWorkerProfileRepository(store.WorkerProfiles())
	stats := otel.NewTracingStatsRepository(store.Stats())

	hasher := auth.NewHasher(bcrypt.DefaultCost)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// --- Application ---
	codeSvc := app.NewCodeService(accounts, codes, notifier, publisher, app.WithCodeTTL(cfg.CodeTTL))
	accountSvc := app.NewAccountService(accounts, codeSvc, hasher, publisher)
	services := handler.Services{
		Codes:    codeSvc,
		Accounts: accountSvc,
		Sessions: app.NewSessionService(accounts, hasher, tokens),
		Listings: app.NewListingService(listings, categories, accounts, publisher),
		Bookings: app.NewBookingService(bookings, listings, fsm.New(), publisher),
		Workers:  app.NewWorkerService(profiles),
		Admin:    app.NewAdminService(stats),
	}

	if cfg.SuperAdminEmail != "" {
		admin, err := accountSvc.EnsureSuperAdmin(ctx, cfg.SuperAdminEmail, cfg.SuperAdminPassword)
		if err != nil {
			return fmt.Errorf("bootstrapping super admin: %w", err)
		}
		slog.Info("super admin ready", "account_id", admin.ID)
	}

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger)
	router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))

	api := humachi.New(router, handler.NewConfig(serviceName, version))
	handler.Register(api, services)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("krishisetu listening", "port", cfg.Port, "docs", "http://localhost:"+cfg.Port+"/docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("stopped")
	return nil
}
