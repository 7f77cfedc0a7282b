package handler

import (
	"net/http"

	"github.com/boddenberg/pj-ledger-go/internal/infra/observability"
	"github.com/boddenberg/pj-ledger-go/internal/port"
	"github.com/boddenberg/pj-ledger-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(ledgerSvc *service.LedgerService, authSvc *service.AuthService, snapshotCache port.Cache[decimal.Decimal], metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Accounts
		// POST /v1/accounts
		// GET  /v1/accounts/{accountID}
		// =============================================
		r.Post("/accounts", createAccountHandler(ledgerSvc, logger))
		r.Get("/accounts/{accountID}", getAccountHandler(ledgerSvc, logger))

		// =============================================
		// Transfers
		// POST /v1/transfers
		// =============================================
		r.Post("/transfers", transferHandler(ledgerSvc, logger))

		// =============================================
		// Ledger
		// GET /v1/ledger/balance
		// GET /v1/metrics/ledger
		// =============================================
		r.Get("/ledger/balance", totalBalanceHandler(ledgerSvc, snapshotCache, metrics, logger))
		r.Get("/metrics/ledger", ledgerMetricsHandler(metrics))

		// =============================================
		// Auth + admin
		// POST /v1/auth/token
		// POST /v1/admin/reset   (Bearer token required)
		// =============================================
		r.Post("/auth/token", issueTokenHandler(authSvc, logger))

		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(authSvc, logger))
			r.Post("/admin/reset", resetLedgerHandler(ledgerSvc, logger))
		})
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
