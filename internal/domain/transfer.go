package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Transfers
// ============================================================

// TransferRequest is the inbound payload for a two-account transfer.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// Transfer is the receipt for a committed transfer.
type Transfer struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferNotification is the payload delivered to the notification webhook.
type TransferNotification struct {
	AccountID string `json:"account_id"`
	Message   string `json:"message"`
}
