// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
)

// AccountStore is the single source of truth for account existence and
// balance. Every mutation is atomic with respect to the targeted account:
// same-account operations are strictly serialized, unrelated accounts can
// be mutated in parallel.
type AccountStore interface {
	// CreateAccount inserts the account only if no account with that id
	// exists. Check-and-insert is one indivisible step.
	CreateAccount(account domain.Account) error

	// GetAccount returns an independent copy of the account's current state.
	// Callers can never reach the store's internal state through it.
	GetAccount(accountID string) (domain.Account, error)

	// AddAmount atomically adds amount (>= 0) to the account's balance.
	AddAmount(accountID string, amount decimal.Decimal) error

	// WithdrawAmount atomically subtracts amount from the account's balance.
	// If the result would go negative the balance is left unchanged and
	// ErrInsufficientBalance is returned.
	WithdrawAmount(accountID string, amount decimal.Decimal) error

	// TotalBalance returns the sum of all balances. It is a best-effort
	// snapshot, exact only when no mutation is in flight.
	TotalBalance() decimal.Decimal

	// ClearAccounts removes every account. Reset utility only.
	ClearAccounts()
}

// Notifier delivers transfer notifications. Delivery is fire-and-forget
// relative to the balance mutation: the coordinator never consults the
// outcome beyond logging it.
type Notifier interface {
	NotifyAboutTransfer(ctx context.Context, account domain.Account, message string) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
