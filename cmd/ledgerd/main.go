package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/pj-ledger-go/internal/config"
	"github.com/boddenberg/pj-ledger-go/internal/handler"
	"github.com/boddenberg/pj-ledger-go/internal/infra/cache"
	"github.com/boddenberg/pj-ledger-go/internal/infra/memstore"
	"github.com/boddenberg/pj-ledger-go/internal/infra/notify"
	"github.com/boddenberg/pj-ledger-go/internal/infra/observability"
	"github.com/boddenberg/pj-ledger-go/internal/infra/resilience"
	"github.com/boddenberg/pj-ledger-go/internal/port"
	"github.com/boddenberg/pj-ledger-go/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("snapshot_cache_ttl", cfg.SnapshotCacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "pj-ledger")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	snapshotCache := cache.New[decimal.Decimal](cfg.SnapshotCacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("notifier")

	// --- Notifier ---
	var notifier port.Notifier
	if cfg.NotifyWebhookURL != "" {
		logger.Info("using webhook notifier",
			zap.String("webhook_url", cfg.NotifyWebhookURL),
		)
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		notifier = notify.NewWebhook(httpClient, cfg.NotifyWebhookURL, cb, resilienceCfg, logger)
	} else {
		logger.Info("no webhook configured, using log notifier")
		notifier = notify.NewLog(logger)
	}

	// --- Store + services ---
	store := memstore.New()
	ledgerSvc := service.NewLedgerService(store, notifier, metrics, logger)

	authSvc := service.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.JWTAccessTTL, logger)
	if cfg.AdminPasswordHash == "" {
		logger.Warn("auth: ADMIN_PASSWORD_HASH not set, admin routes unavailable")
	}

	// --- Router ---
	router := handler.NewRouter(ledgerSvc, authSvc, snapshotCache, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
