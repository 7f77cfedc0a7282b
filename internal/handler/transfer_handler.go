package handler

import (
	"encoding/json"
	"net/http"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
	"github.com/boddenberg/pj-ledger-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Transfers — two-account atomic transfer
// ============================================================

// transferResponse is the receipt returned to the caller, with the updated
// balances of both endpoints.
type transferResponse struct {
	Transfer *domain.Transfer `json:"transfer"`
	From     domain.Account   `json:"from"`
	To       domain.Account   `json:"to"`
}

func transferHandler(ledgerSvc *service.LedgerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfers")
		defer span.End()

		var req domain.TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.FromAccountID == "" || req.ToAccountID == "" {
			writeError(w, http.StatusBadRequest, "from_account_id and to_account_id are required")
			return
		}
		// Negative amounts die at the boundary; the core re-validates only
		// the zero case.
		if req.Amount.Sign() < 0 {
			writeError(w, http.StatusBadRequest, "amount must not be negative")
			return
		}

		transfer, err := ledgerSvc.Transfer(ctx, req.FromAccountID, req.ToAccountID, req.Amount)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		// Fetch both updated balances concurrently for the response.
		var from, to domain.Account
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			from, err = ledgerSvc.GetAccount(gCtx, req.FromAccountID)
			return err
		})
		g.Go(func() error {
			var err error
			to, err = ledgerSvc.GetAccount(gCtx, req.ToAccountID)
			return err
		})
		if err := g.Wait(); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, transferResponse{
			Transfer: transfer,
			From:     from,
			To:       to,
		})
	}
}
