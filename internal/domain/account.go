package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Accounts
// ============================================================

// Account is a single ledger account. Balance is an arbitrary-precision
// decimal that is never negative at any observable point.
type Account struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

// CreateAccountRequest is the inbound payload for account creation.
type CreateAccountRequest struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

// LedgerSnapshot is the point-in-time view returned by the balance endpoint.
// The total is best-effort: it is only exact when no transfer is in flight.
type LedgerSnapshot struct {
	TotalBalance decimal.Decimal `json:"total_balance"`
	ObservedAt   time.Time       `json:"observed_at"`
}
