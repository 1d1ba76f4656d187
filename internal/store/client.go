package store

import (
	"context"

	"github.com/acmebank/clientms/internal/domain"
	"github.com/google/uuid"
)

// ClientStore defines the interface for client data persistence.
type ClientStore interface {
	// Create saves a new client to the store.
	// Returns ErrDNIExists if the DNI is already taken and ErrEmailExists
	// if the email is already taken (case-insensitive).
	// Returns validation errors from the domain Client if data is invalid.
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by their unique ID.
	// Returns ErrClientNotFound if the client does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)

	// List retrieves all clients. Order is store-defined; callers must not
	// rely on any particular ordering.
	List(ctx context.Context) ([]*domain.Client, error)

	// Update overwrites an existing client's mutable fields.
	// The ID is never changed. Returns ErrClientNotFound if the client does
	// not exist, ErrDNIExists/ErrEmailExists if the new values collide with
	// another record.
	Update(ctx context.Context, client *domain.Client) error

	// Delete removes a client from the store by their ID.
	// Returns ErrClientNotFound if the client does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByDNI reports whether any client has the given DNI.
	ExistsByDNI(ctx context.Context, dni string) (bool, error)

	// ExistsByEmail reports whether any client has the given email,
	// compared case-insensitively.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
