package mocks

import (
	"context"

	"github.com/acmebank/clientms/internal/domain"
	"github.com/acmebank/clientms/internal/service"
	"github.com/google/uuid"
)

// MockClientService implements service.ClientService for handler tests.
// Every method must be set through its Fn field before use.
type MockClientService struct {
	RegisterFn func(ctx context.Context, firstName, lastName, dni, email string) (*domain.Client, error)
	GetByIDFn  func(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	ListAllFn  func(ctx context.Context) ([]*domain.Client, error)
	UpdateFn   func(ctx context.Context, id uuid.UUID, firstName, lastName, dni, email string) (*domain.Client, error)
	PatchFn    func(ctx context.Context, id uuid.UUID, patch service.ClientPatch) (*domain.Client, error)
	DeleteFn   func(ctx context.Context, id uuid.UUID) error
}

// Register implements the ClientService interface.
func (m *MockClientService) Register(
	ctx context.Context,
	firstName, lastName, dni, email string,
) (*domain.Client, error) {
	return m.RegisterFn(ctx, firstName, lastName, dni, email)
}

// GetByID implements the ClientService interface.
func (m *MockClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return m.GetByIDFn(ctx, id)
}

// ListAll implements the ClientService interface.
func (m *MockClientService) ListAll(ctx context.Context) ([]*domain.Client, error) {
	return m.ListAllFn(ctx)
}

// Update implements the ClientService interface.
func (m *MockClientService) Update(
	ctx context.Context,
	id uuid.UUID,
	firstName, lastName, dni, email string,
) (*domain.Client, error) {
	return m.UpdateFn(ctx, id, firstName, lastName, dni, email)
}

// Patch implements the ClientService interface.
func (m *MockClientService) Patch(
	ctx context.Context,
	id uuid.UUID,
	patch service.ClientPatch,
) (*domain.Client, error) {
	return m.PatchFn(ctx, id, patch)
}

// Delete implements the ClientService interface.
func (m *MockClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

// Ensure MockClientService implements service.ClientService
var _ service.ClientService = (*MockClientService)(nil)
