package mocks

import (
	"context"

	"github.com/acmebank/clientms/internal/platform/accounts"
	"github.com/google/uuid"
)

// MockAccountsLookup implements service.AccountsLookup for testing.
// By default it returns the configured Accounts slice and Err as-is.
type MockAccountsLookup struct {
	ByClientIDFn func(ctx context.Context, clientID uuid.UUID) ([]accounts.Account, error)

	Accounts []accounts.Account
	Err      error

	// Calls records the client IDs the lookup was invoked with.
	Calls []uuid.UUID
}

// ByClientID implements the AccountsLookup interface.
func (m *MockAccountsLookup) ByClientID(
	ctx context.Context,
	clientID uuid.UUID,
) ([]accounts.Account, error) {
	m.Calls = append(m.Calls, clientID)

	if m.ByClientIDFn != nil {
		return m.ByClientIDFn(ctx, clientID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Accounts, nil
}
