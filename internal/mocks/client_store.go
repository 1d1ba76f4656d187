package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/acmebank/clientms/internal/domain"
	"github.com/acmebank/clientms/internal/store"
	"github.com/google/uuid"
)

// MockClientStore implements store.ClientStore for testing.
// By default it behaves as an in-memory store keyed by client ID; individual
// methods can be overridden through the Fn fields.
type MockClientStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, client *domain.Client) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	ListFn          func(ctx context.Context) ([]*domain.Client, error)
	UpdateFn        func(ctx context.Context, client *domain.Client) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	ExistsByDNIFn   func(ctx context.Context, dni string) (bool, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)

	mu      sync.Mutex
	Clients map[uuid.UUID]*domain.Client
}

// NewMockClientStore creates a new mock store with initialized defaults.
func NewMockClientStore() *MockClientStore {
	return &MockClientStore{
		Clients: make(map[uuid.UUID]*domain.Client),
	}
}

// Seed inserts clients directly into the backing map, bypassing uniqueness
// checks. Useful for arranging test fixtures.
func (m *MockClientStore) Seed(clients ...*domain.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range clients {
		copied := *c
		m.Clients[c.ID] = &copied
	}
}

// Get returns the stored client with the given ID, or nil.
func (m *MockClientStore) Get(id uuid.UUID) *domain.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.Clients[id]; ok {
		copied := *c
		return &copied
	}
	return nil
}

// Create implements the ClientStore interface.
func (m *MockClientStore) Create(ctx context.Context, client *domain.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, client)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Clients {
		if existing.DNI == client.DNI {
			return store.ErrDNIExists
		}
		if strings.EqualFold(existing.Email, client.Email) {
			return store.ErrEmailExists
		}
	}

	copied := *client
	m.Clients[client.ID] = &copied
	return nil
}

// GetByID implements the ClientStore interface.
func (m *MockClientStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	client, ok := m.Clients[id]
	if !ok {
		return nil, store.ErrClientNotFound
	}
	copied := *client
	return &copied, nil
}

// List implements the ClientStore interface.
func (m *MockClientStore) List(ctx context.Context) ([]*domain.Client, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	clients := make([]*domain.Client, 0, len(m.Clients))
	for _, client := range m.Clients {
		copied := *client
		clients = append(clients, &copied)
	}
	return clients, nil
}

// Update implements the ClientStore interface.
func (m *MockClientStore) Update(ctx context.Context, client *domain.Client) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, client)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Clients[client.ID]; !ok {
		return store.ErrClientNotFound
	}

	for id, existing := range m.Clients {
		if id == client.ID {
			continue
		}
		if existing.DNI == client.DNI {
			return store.ErrDNIExists
		}
		if strings.EqualFold(existing.Email, client.Email) {
			return store.ErrEmailExists
		}
	}

	copied := *client
	m.Clients[client.ID] = &copied
	return nil
}

// Delete implements the ClientStore interface.
func (m *MockClientStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Clients[id]; !ok {
		return store.ErrClientNotFound
	}
	delete(m.Clients, id)
	return nil
}

// ExistsByDNI implements the ClientStore interface.
func (m *MockClientStore) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	if m.ExistsByDNIFn != nil {
		return m.ExistsByDNIFn(ctx, dni)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, client := range m.Clients {
		if client.DNI == dni {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByEmail implements the ClientStore interface.
func (m *MockClientStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, client := range m.Clients {
		if strings.EqualFold(client.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// Ensure MockClientStore implements store.ClientStore
var _ store.ClientStore = (*MockClientStore)(nil)
