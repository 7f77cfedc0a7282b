// Package memstore provides the in-memory account store.
// It is the only component that touches raw account state; everything else
// sees independent copies.
package memstore

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
)

// entry holds one account's mutable state. The entry mutex serializes every
// read-modify-write of this account's balance without blocking operations
// on other accounts.
type entry struct {
	mu      sync.Mutex
	balance decimal.Decimal
}

// Store is a thread-safe in-memory account store. The outer RWMutex guards
// map membership only; balance mutations take the per-account entry mutex.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*entry
}

// New creates an empty store.
func New() *Store {
	return &Store{accounts: make(map[string]*entry)}
}

// CreateAccount inserts the account, failing if the id is already taken.
// The write lock makes check-and-insert indivisible, so two concurrent
// creations with the same id cannot both succeed.
func (s *Store) CreateAccount(account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return &domain.ErrDuplicateAccount{ID: account.ID}
	}
	s.accounts[account.ID] = &entry{balance: account.Balance}
	return nil
}

// GetAccount returns an independent copy of the account's current state.
func (s *Store) GetAccount(accountID string) (domain.Account, error) {
	e, err := s.lookup(accountID)
	if err != nil {
		return domain.Account{}, err
	}

	e.mu.Lock()
	balance := e.balance
	e.mu.Unlock()

	return domain.Account{ID: accountID, Balance: balance}, nil
}

// AddAmount atomically adds amount to the account's balance.
// Negative amounts are rejected: credits never remove funds.
func (s *Store) AddAmount(accountID string, amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return &domain.ErrValidation{Field: "amount", Message: "credit amount must not be negative"}
	}

	e, err := s.lookup(accountID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.balance = e.balance.Add(amount)
	e.mu.Unlock()
	return nil
}

// WithdrawAmount atomically subtracts amount from the account's balance.
// If the result would go negative the balance is left unchanged.
func (s *Store) WithdrawAmount(accountID string, amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return &domain.ErrValidation{Field: "amount", Message: "debit amount must not be negative"}
	}

	e, err := s.lookup(accountID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	updated := e.balance.Sub(amount)
	if updated.Sign() < 0 {
		return &domain.ErrInsufficientBalance{AccountID: accountID}
	}
	e.balance = updated
	return nil
}

// TotalBalance returns the sum of all current balances. It is a best-effort
// snapshot: each balance is read atomically, but the sum is not fenced
// against transfers in flight across accounts.
func (s *Store) TotalBalance() decimal.Decimal {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.accounts))
	for _, e := range s.accounts {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sum := decimal.Zero
	for _, e := range entries {
		e.mu.Lock()
		sum = sum.Add(e.balance)
		e.mu.Unlock()
	}
	return sum
}

// ClearAccounts removes every account.
func (s *Store) ClearAccounts() {
	s.mu.Lock()
	s.accounts = make(map[string]*entry)
	s.mu.Unlock()
}

func (s *Store) lookup(accountID string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.accounts[accountID]
	s.mu.RUnlock()

	if !ok {
		return nil, &domain.ErrAccountNotFound{ID: accountID}
	}
	return e, nil
}
