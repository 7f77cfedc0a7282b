package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
	"github.com/boddenberg/pj-ledger-go/internal/infra/observability"
	"github.com/boddenberg/pj-ledger-go/internal/port"
	"github.com/boddenberg/pj-ledger-go/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ============================================================
// Ledger — total balance snapshot + metrics view
// ============================================================

const snapshotCacheKey = "ledger_total"

// totalBalanceHandler serves the total-balance snapshot. The sum is
// best-effort by contract, so it is served through a short-TTL cache.
func totalBalanceHandler(ledgerSvc *service.LedgerService, snapshotCache port.Cache[decimal.Decimal], metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/ledger/balance")
		defer span.End()

		if total, ok := snapshotCache.Get(snapshotCacheKey); ok {
			metrics.IncrCacheHit(snapshotCacheKey)
			writeJSON(w, http.StatusOK, domain.LedgerSnapshot{
				TotalBalance: total,
				ObservedAt:   time.Now().UTC(),
			})
			return
		}
		metrics.IncrCacheMiss(snapshotCacheKey)

		total := ledgerSvc.TotalBalance(ctx)
		snapshotCache.Set(snapshotCacheKey, total)

		writeJSON(w, http.StatusOK, domain.LedgerSnapshot{
			TotalBalance: total,
			ObservedAt:   time.Now().UTC(),
		})
	}
}

// ledgerMetricsHandler serves the aggregated ledger metrics snapshot.
func ledgerMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetLedgerSnapshot())
	}
}
