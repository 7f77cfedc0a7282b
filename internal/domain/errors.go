package domain

import "fmt"

// Error types for consistent error handling across the ledger.

// ErrDuplicateAccount indicates creation of an account id that already exists.
type ErrDuplicateAccount struct {
	ID string
}

func (e *ErrDuplicateAccount) Error() string {
	return fmt.Sprintf("account id %s already exists", e.ID)
}

// ErrAccountNotFound indicates an operation referenced an unknown account.
type ErrAccountNotFound struct {
	ID string
}

func (e *ErrAccountNotFound) Error() string {
	return fmt.Sprintf("account %s does not exist", e.ID)
}

// ErrInsufficientBalance indicates a debit would drive the balance negative.
// AccountID names the account that could not cover the amount.
type ErrInsufficientBalance struct {
	AccountID string
}

func (e *ErrInsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient balance in account %s", e.AccountID)
}

// ErrInvalidAmount indicates a zero-amount transfer request.
type ErrInvalidAmount struct{}

func (e *ErrInvalidAmount) Error() string {
	return "transfer amount must be greater than 0"
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrExternalService indicates a failure in an external service call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}
