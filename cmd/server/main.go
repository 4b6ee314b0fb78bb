package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dukerupert/cakekiosk/internal"
	"github.com/dukerupert/cakekiosk/internal/auth"
	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/handler"
	"github.com/dukerupert/cakekiosk/internal/handler/kiosk"
	"github.com/dukerupert/cakekiosk/internal/middleware"
	"github.com/dukerupert/cakekiosk/internal/mirror"
	"github.com/dukerupert/cakekiosk/internal/postgres"
	"github.com/dukerupert/cakekiosk/internal/receipt"
	"github.com/dukerupert/cakekiosk/internal/router"
	"github.com/dukerupert/cakekiosk/internal/routes"
	"github.com/dukerupert/cakekiosk/internal/service"
	"github.com/dukerupert/cakekiosk/internal/storage"
	"github.com/dukerupert/cakekiosk/internal/telemetry"
)

const metricsNamespace = "cakekiosk"

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel, cfg.KioskID)
	loc := cfg.Location()

	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Enabled:     cfg.Sentry.Enabled,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		KioskID:     cfg.KioskID,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	catalog := postgres.NewCatalog(pool, logger)
	store := postgres.NewOrderStore(pool, cfg.KioskID)

	// Remote mirror
	var orderMirror domain.Mirror = mirror.Disabled{}
	if cfg.NATS.URL != "" {
		natsMirror, closeMirror, err := mirror.Connect(cfg.NATS.URL, cfg.NATS.Subject, cfg.KioskID, cfg.NATS.Timeout, logger)
		if err != nil {
			return err
		}
		defer closeMirror()
		orderMirror = natsMirror
	} else {
		logger.Info("NATS_URL not set, order mirroring disabled")
	}

	// Receipt printer
	spool, err := storage.NewLocalStorage(cfg.Receipt.SpoolPath)
	if err != nil {
		return fmt.Errorf("failed to open receipt spool: %w", err)
	}
	renderer, err := receipt.NewRenderer(cfg.Receipt.ShopName, cfg.Receipt.Width, loc)
	if err != nil {
		return fmt.Errorf("failed to build receipt renderer: %w", err)
	}
	printer := receipt.NewSpoolPrinter(renderer, spool)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewMetrics(metricsNamespace, reg, reg)
	kioskMetrics := telemetry.NewKioskMetrics(metricsNamespace, reg)

	// Services
	pricing := service.NewPricingEngine(catalog)
	delivery := service.NewDeliveryScheduler(catalog)
	controller := service.NewOrderController(catalog, pricing, delivery, logger)
	tickets := service.NewTicketService(store, orderMirror, printer, pricing, kioskMetrics, logger)

	sessions := kiosk.NewSessions(cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute, logger)

	// Rate limiting
	kioskLimiter := middleware.NewRateLimiter(middleware.KioskRateLimiterConfig())
	defer kioskLimiter.Stop()
	staffLimiter := middleware.NewRateLimiter(middleware.StaffRateLimiterConfig())
	defer staffLimiter.Stop()

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		telemetry.SentryMiddleware(),
		httpMetrics.Middleware,
		middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig()),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		router.Logger(logger),
	)

	routes.RegisterOpsRoutes(r, routes.OpsDeps{
		Health:  healthHandler(pool, logger),
		Metrics: httpMetrics.Handler(),
	})

	routes.RegisterKioskRoutes(r, routes.KioskDeps{
		Handler: kiosk.NewHandler(controller, tickets, sessions, kioskMetrics, loc, logger),
		Limiter: kioskLimiter,
	})

	if cfg.Staff.PasswordHash != "" {
		creds, err := auth.NewStaffCredentials(cfg.Staff.Username, cfg.Staff.PasswordHash)
		if err != nil {
			return fmt.Errorf("invalid staff credentials: %w", err)
		}
		routes.RegisterStaffRoutes(r, routes.StaffDeps{
			Handler:  kiosk.NewStaffHandler(tickets, printer, logger),
			Verifier: creds,
			Limiter:  staffLimiter,
		})
	} else {
		logger.Warn("STAFF_PASSWORD_HASH not set, staff ticket endpoints disabled")
	}

	var h http.Handler = r
	if len(cfg.AllowedOrigins) > 0 {
		h = router.CORS(cfg.AllowedOrigins)(r)
	}

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting kiosk server", "address", srv.Addr, "kiosk_id", cfg.KioskID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down kiosk server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// healthHandler reports whether the kiosk can still reach its database.
func healthHandler(pool *pgxpool.Pool, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			logger.Warn("health check failed", "error", err)
			handler.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// hashPassword prints a bcrypt hash for STAFF_PASSWORD_HASH.
func hashPassword(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: server hash-password <password>")
	}
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}
