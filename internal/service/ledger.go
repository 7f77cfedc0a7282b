// Package service provides the business logic layer (use cases).
// LedgerService owns account lifecycle and the two-account transfer
// protocol on top of the account store's atomic primitives.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
	"github.com/boddenberg/pj-ledger-go/internal/infra/keylock"
	"github.com/boddenberg/pj-ledger-go/internal/infra/observability"
	"github.com/boddenberg/pj-ledger-go/internal/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/ledger")

// LedgerService orchestrates account operations and transfers.
type LedgerService struct {
	store    port.AccountStore
	notifier port.Notifier
	locks    *keylock.Table
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewLedgerService creates the ledger service with all dependencies injected.
func NewLedgerService(store port.AccountStore, notifier port.Notifier, metrics *observability.Metrics, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		store:    store,
		notifier: notifier,
		locks:    keylock.New(),
		metrics:  metrics,
		logger:   logger,
	}
}

// CreateAccount registers a new account with its opening balance.
func (s *LedgerService) CreateAccount(ctx context.Context, account domain.Account) error {
	_, span := tracer.Start(ctx, "LedgerService.CreateAccount")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", account.ID))

	if account.ID == "" {
		return &domain.ErrValidation{Field: "id", Message: "account id is required"}
	}
	if account.Balance.Sign() < 0 {
		return &domain.ErrValidation{Field: "balance", Message: "opening balance must not be negative"}
	}

	if err := s.store.CreateAccount(account); err != nil {
		return err
	}

	s.metrics.IncrAccountCreated()
	s.logger.Info("account created",
		zap.String("account_id", account.ID),
		zap.String("balance", account.Balance.String()),
	)
	return nil
}

// GetAccount returns an independent copy of the account's current state.
func (s *LedgerService) GetAccount(ctx context.Context, accountID string) (domain.Account, error) {
	_, span := tracer.Start(ctx, "LedgerService.GetAccount")
	defer span.End()

	return s.store.GetAccount(accountID)
}

// TotalBalance returns the best-effort sum of all balances. It is exact only
// at quiescence; mid-transfer reads may observe the credit-before-debit
// window.
func (s *LedgerService) TotalBalance(ctx context.Context) decimal.Decimal {
	_, span := tracer.Start(ctx, "LedgerService.TotalBalance")
	defer span.End()

	return s.store.TotalBalance()
}

// ClearAccounts wipes the whole ledger. Reset utility only.
func (s *LedgerService) ClearAccounts(ctx context.Context) {
	_, span := tracer.Start(ctx, "LedgerService.ClearAccounts")
	defer span.End()

	s.store.ClearAccounts()
	s.logger.Warn("ledger cleared")
}

// Transfer moves amount from one account to another as a single observable
// unit. Per-account locks are taken in lexicographic id order so opposing
// transfers between the same pair can never deadlock. The mutation sequence
// is credit destination, then debit source; an insufficient source balance
// triggers a compensating debit of the destination, restoring both accounts
// to their pre-transfer values before the error propagates.
func (s *LedgerService) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*domain.Transfer, error) {
	ctx, span := tracer.Start(ctx, "LedgerService.Transfer")
	defer span.End()
	span.SetAttributes(
		attribute.String("transfer.from", fromID),
		attribute.String("transfer.to", toID),
	)

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("transfer", time.Since(start))
	}()

	if amount.IsZero() {
		s.metrics.IncrTransfer("rejected")
		return nil, &domain.ErrInvalidAmount{}
	}

	from, to, err := s.executeTransfer(fromID, toID, amount)
	if err != nil {
		s.metrics.IncrTransfer("failed")
		return nil, err
	}
	s.metrics.IncrTransfer("success")

	transfer := &domain.Transfer{
		ID:            uuid.New().String(),
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}

	s.logger.Info("transfer committed",
		zap.String("transfer_id", transfer.ID),
		zap.String("from_account_id", fromID),
		zap.String("to_account_id", toID),
		zap.String("amount", amount.String()),
	)

	s.notifyTransfer(ctx, transfer, from, to)
	return transfer, nil
}

// executeTransfer resolves both endpoints and runs the mutation sequence
// while holding the ordered pair lock. The returned accounts are the
// pre-transfer snapshots, used to address the notifications.
func (s *LedgerService) executeTransfer(fromID, toID string, amount decimal.Decimal) (domain.Account, domain.Account, error) {
	s.locks.LockPair(fromID, toID)
	defer s.locks.UnlockPair(fromID, toID)

	from, err := s.store.GetAccount(fromID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}
	to, err := s.store.GetAccount(toID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	// Self-transfer: endpoints and amount validated, no balance change.
	if fromID == toID {
		return from, to, nil
	}

	if err := s.store.AddAmount(toID, amount); err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	if err := s.store.WithdrawAmount(fromID, amount); err != nil {
		var insufficient *domain.ErrInsufficientBalance
		if errors.As(err, &insufficient) {
			// Undo the credit so both balances match their pre-transfer
			// values exactly.
			if cerr := s.store.WithdrawAmount(toID, amount); cerr != nil {
				s.logger.Error("transfer compensation failed",
					zap.String("account_id", toID),
					zap.Error(cerr),
				)
			}
			return domain.Account{}, domain.Account{}, &domain.ErrInsufficientBalance{AccountID: fromID}
		}
		return domain.Account{}, domain.Account{}, err
	}

	return from, to, nil
}

// notifyTransfer fires both notifications concurrently. Delivery failures
// never roll back the transfer; they are logged and counted, nothing more.
func (s *LedgerService) notifyTransfer(ctx context.Context, transfer *domain.Transfer, from, to domain.Account) {
	amount := transfer.Amount.String()

	var g errgroup.Group
	g.Go(func() error {
		return s.notifier.NotifyAboutTransfer(ctx, from,
			fmt.Sprintf("amount %s transferred to account %s", amount, transfer.ToAccountID))
	})
	g.Go(func() error {
		return s.notifier.NotifyAboutTransfer(ctx, to,
			fmt.Sprintf("amount %s received from account %s", amount, transfer.FromAccountID))
	})

	if err := g.Wait(); err != nil {
		s.metrics.IncrExternalError("notifier")
		s.logger.Warn("transfer notification failed",
			zap.String("transfer_id", transfer.ID),
			zap.Error(err),
		)
	}
}
