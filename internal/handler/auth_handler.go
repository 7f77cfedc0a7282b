package handler

import (
	"encoding/json"
	"net/http"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
	"github.com/boddenberg/pj-ledger-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Auth — operator token exchange
// ============================================================

func issueTokenHandler(authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/token")
		defer span.End()

		var req domain.TokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Password == "" {
			writeError(w, http.StatusBadRequest, "password is required")
			return
		}

		resp, err := authSvc.IssueToken(ctx, req.Password)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// ============================================================
// Admin — ledger reset (JWT-protected)
// ============================================================

func resetLedgerHandler(ledgerSvc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/admin/reset")
		defer span.End()

		ledgerSvc.ClearAccounts(ctx)
		logger.Info("ledger reset requested",
			zap.String("subject", SubjectFromContext(ctx)),
			zap.String("remote_addr", r.RemoteAddr),
		)

		writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}
