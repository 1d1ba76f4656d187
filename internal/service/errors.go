package service

import (
	"errors"
	"fmt"
)

// Common error types for ClientService.
var (
	// ErrActiveAccounts indicates that a client cannot be deleted because
	// the accounts service reports at least one account for them.
	// The delete is refused and nothing is removed.
	ErrActiveAccounts = errors.New("client has active accounts")

	// ErrAccountsUnavailable indicates that the accounts service could not
	// be consulted. Deletion fails closed: an unanswered question about
	// active accounts is treated as "may have accounts".
	ErrAccountsUnavailable = errors.New("accounts lookup unavailable")
)

// ClientServiceError is a custom error type for client service errors.
type ClientServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ClientServiceError.
func (e *ClientServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("client service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("client service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ClientServiceError) Unwrap() error {
	return e.Err
}

// NewClientServiceError creates a new ClientServiceError.
func NewClientServiceError(operation, message string, err error) *ClientServiceError {
	return &ClientServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
