// Package service contains the business logic orchestrating stores and
// external collaborators.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/acmebank/clientms/internal/domain"
	"github.com/acmebank/clientms/internal/platform/accounts"
	"github.com/acmebank/clientms/internal/platform/logger"
	"github.com/acmebank/clientms/internal/store"
	"github.com/google/uuid"
)

// AccountsLookup is the read-only capability the client service needs from
// the accounts collaborator. Implementations must honor the context and must
// not mutate account data.
type AccountsLookup interface {
	// ByClientID returns the accounts recorded for the given client.
	// The result may be unfiltered or over-broad; callers re-filter by
	// client ID before acting on it.
	ByClientID(ctx context.Context, clientID uuid.UUID) ([]accounts.Account, error)
}

// ClientPatch carries a partial update. Nil fields are left untouched;
// non-nil blank fields are rejected.
type ClientPatch struct {
	FirstName *string
	LastName  *string
	DNI       *string
	Email     *string
}

// ClientService provides the client lifecycle operations: registration,
// retrieval, full and partial update, and account-gated deletion.
// It enforces the DNI/email uniqueness invariants on every mutating path.
type ClientService interface {
	// Register creates a new client from the four identity fields.
	// Returns a *domain.ValidationError if any field is blank or the email
	// is malformed, store.ErrDNIExists/store.ErrEmailExists on a uniqueness
	// conflict. When both keys collide, the DNI conflict is reported.
	Register(ctx context.Context, firstName, lastName, dni, email string) (*domain.Client, error)

	// GetByID retrieves a client by ID.
	// Returns store.ErrClientNotFound if no such client exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)

	// ListAll returns all clients in store-defined order.
	ListAll(ctx context.Context) ([]*domain.Client, error)

	// Update replaces all mutable fields of an existing client.
	// Returns store.ErrClientNotFound if the ID is unknown, a validation
	// error if any field is invalid, and store.ErrDNIExists or
	// store.ErrEmailExists if a changed key collides with another record.
	Update(ctx context.Context, id uuid.UUID, firstName, lastName, dni, email string) (*domain.Client, error)

	// Patch applies a partial update; nil fields keep their stored value.
	// A supplied blank field is a validation error. A changed DNI or email
	// is checked for uniqueness the same way Update checks it.
	Patch(ctx context.Context, id uuid.UUID, patch ClientPatch) (*domain.Client, error)

	// Delete removes a client, provided the accounts service reports no
	// accounts for them. Returns store.ErrClientNotFound for an unknown ID,
	// ErrActiveAccounts if at least one account exists (nothing deleted),
	// and ErrAccountsUnavailable if the lookup failed (nothing deleted).
	Delete(ctx context.Context, id uuid.UUID) error
}

// clientServiceImpl implements the ClientService interface.
// It is stateless between calls; all state lives in the store.
type clientServiceImpl struct {
	clientStore store.ClientStore
	accounts    AccountsLookup
	logger      *slog.Logger
}

// NewClientService creates a new ClientService.
// It returns an error if any of the required dependencies are nil.
func NewClientService(
	clientStore store.ClientStore,
	accounts AccountsLookup,
	logger *slog.Logger,
) (ClientService, error) {
	if clientStore == nil {
		return nil, domain.NewValidationError("clientStore", "cannot be nil", domain.ErrValidation)
	}
	if accounts == nil {
		return nil, domain.NewValidationError("accounts", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &clientServiceImpl{
		clientStore: clientStore,
		accounts:    accounts,
		logger:      logger.With(slog.String("component", "client_service")),
	}, nil
}

// Register implements ClientService.Register
func (s *clientServiceImpl) Register(
	ctx context.Context,
	firstName, lastName, dni, email string,
) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// NewClient re-checks blankness and email shape even though the boundary
	// already validated structure; business rules are enforced here, once.
	client, err := domain.NewClient(firstName, lastName, dni, email)
	if err != nil {
		log.Warn("client validation failed during registration",
			slog.String("error", err.Error()))
		return nil, err
	}

	// DNI is checked before email: when both keys collide, the DNI conflict
	// is the one reported.
	dniTaken, err := s.clientStore.ExistsByDNI(ctx, client.DNI)
	if err != nil {
		log.Error("failed to check DNI uniqueness",
			slog.String("error", err.Error()))
		return nil, NewClientServiceError("register", "failed to check DNI uniqueness", err)
	}
	if dniTaken {
		log.Warn("registration rejected: DNI already in use",
			slog.String("dni", client.DNI))
		return nil, store.ErrDNIExists
	}

	emailTaken, err := s.clientStore.ExistsByEmail(ctx, client.Email)
	if err != nil {
		log.Error("failed to check email uniqueness",
			slog.String("error", err.Error()))
		return nil, NewClientServiceError("register", "failed to check email uniqueness", err)
	}
	if emailTaken {
		log.Warn("registration rejected: email already in use")
		return nil, store.ErrEmailExists
	}

	// The store's unique indexes remain the backstop for races between the
	// existence checks and this write.
	if err := s.clientStore.Create(ctx, client); err != nil {
		if store.IsDuplicateError(err) {
			return nil, err
		}
		log.Error("failed to persist new client",
			slog.String("error", err.Error()),
			slog.String("client_id", client.ID.String()))
		return nil, NewClientServiceError("register", "failed to save client", err)
	}

	log.Info("client registered",
		slog.String("client_id", client.ID.String()),
		slog.String("dni", client.DNI))
	return client, nil
}

// GetByID implements ClientService.GetByID
func (s *clientServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	client, err := s.clientStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrClientNotFound
		}
		log.Error("failed to retrieve client",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return nil, NewClientServiceError("get_by_id", "failed to retrieve client", err)
	}

	return client, nil
}

// ListAll implements ClientService.ListAll
func (s *clientServiceImpl) ListAll(ctx context.Context) ([]*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	clients, err := s.clientStore.List(ctx)
	if err != nil {
		log.Error("failed to list clients", slog.String("error", err.Error()))
		return nil, NewClientServiceError("list_all", "failed to list clients", err)
	}

	return clients, nil
}

// Update implements ClientService.Update
func (s *clientServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	firstName, lastName, dni, email string,
) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	client, err := s.clientStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrClientNotFound
		}
		return nil, NewClientServiceError("update", "failed to load client", err)
	}

	// Uniqueness is re-checked only for keys that actually change, so an
	// update touching only names never pays for an index lookup.
	if dni != client.DNI {
		taken, err := s.clientStore.ExistsByDNI(ctx, dni)
		if err != nil {
			return nil, NewClientServiceError("update", "failed to check DNI uniqueness", err)
		}
		if taken {
			log.Warn("update rejected: DNI already in use",
				slog.String("client_id", id.String()))
			return nil, store.ErrDNIExists
		}
	}

	if !client.EmailEquals(email) {
		taken, err := s.clientStore.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, NewClientServiceError("update", "failed to check email uniqueness", err)
		}
		if taken {
			log.Warn("update rejected: email already in use",
				slog.String("client_id", id.String()))
			return nil, store.ErrEmailExists
		}
	}

	updated := *client
	updated.FirstName = firstName
	updated.LastName = lastName
	updated.DNI = dni
	updated.Email = email
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		log.Warn("client validation failed during update",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return nil, err
	}

	if err := s.clientStore.Update(ctx, &updated); err != nil {
		if store.IsNotFoundError(err) || store.IsDuplicateError(err) {
			return nil, err
		}
		log.Error("failed to persist client update",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return nil, NewClientServiceError("update", "failed to save client", err)
	}

	log.Info("client updated", slog.String("client_id", id.String()))
	return &updated, nil
}

// Patch implements ClientService.Patch
func (s *clientServiceImpl) Patch(
	ctx context.Context,
	id uuid.UUID,
	patch ClientPatch,
) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	client, err := s.clientStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrClientNotFound
		}
		return nil, NewClientServiceError("patch", "failed to load client", err)
	}

	updated := *client

	if patch.FirstName != nil {
		if domain.IsBlank(*patch.FirstName) {
			return nil, domain.ErrEmptyFirstName
		}
		updated.FirstName = *patch.FirstName
	}

	if patch.LastName != nil {
		if domain.IsBlank(*patch.LastName) {
			return nil, domain.ErrEmptyLastName
		}
		updated.LastName = *patch.LastName
	}

	if patch.DNI != nil {
		if domain.IsBlank(*patch.DNI) {
			return nil, domain.ErrEmptyDNI
		}
		if *patch.DNI != client.DNI {
			taken, err := s.clientStore.ExistsByDNI(ctx, *patch.DNI)
			if err != nil {
				return nil, NewClientServiceError("patch", "failed to check DNI uniqueness", err)
			}
			if taken {
				log.Warn("patch rejected: DNI already in use",
					slog.String("client_id", id.String()))
				return nil, store.ErrDNIExists
			}
		}
		updated.DNI = *patch.DNI
	}

	if patch.Email != nil {
		if domain.IsBlank(*patch.Email) {
			return nil, domain.ErrEmptyEmail
		}
		// An email that differs only in case keeps the stored casing; a
		// genuinely different one must be unique across all other clients.
		if !client.EmailEquals(*patch.Email) {
			taken, err := s.clientStore.ExistsByEmail(ctx, *patch.Email)
			if err != nil {
				return nil, NewClientServiceError("patch", "failed to check email uniqueness", err)
			}
			if taken {
				log.Warn("patch rejected: email already in use",
					slog.String("client_id", id.String()))
				return nil, store.ErrEmailExists
			}
			updated.Email = *patch.Email
		}
	}

	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		log.Warn("client validation failed during patch",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return nil, err
	}

	if err := s.clientStore.Update(ctx, &updated); err != nil {
		if store.IsNotFoundError(err) || store.IsDuplicateError(err) {
			return nil, err
		}
		log.Error("failed to persist client patch",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return nil, NewClientServiceError("patch", "failed to save client", err)
	}

	log.Info("client patched", slog.String("client_id", id.String()))
	return &updated, nil
}

// Delete implements ClientService.Delete
// The accounts check and the delete are two dependent I/O calls; no lock is
// held between them, and the delete only happens after the lookup
// definitively answered "no accounts".
func (s *clientServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.clientStore.GetByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrClientNotFound
		}
		return NewClientServiceError("delete", "failed to load client", err)
	}

	accts, err := s.accounts.ByClientID(ctx, id)
	if err != nil {
		log.Warn("accounts lookup failed, refusing delete",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return NewClientServiceError("delete", "accounts lookup failed", ErrAccountsUnavailable)
	}

	// The collaborator is asked to filter by clientId but is not trusted to:
	// discard anything that does not belong to this client before deciding.
	active := 0
	for _, account := range accts {
		if account.ClientID == id.String() {
			active++
		}
	}
	if active > 0 {
		log.Warn("delete refused: client has active accounts",
			slog.String("client_id", id.String()),
			slog.Int("account_count", active))
		return ErrActiveAccounts
	}

	if err := s.clientStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrClientNotFound
		}
		log.Error("failed to delete client",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return NewClientServiceError("delete", "failed to delete client", err)
	}

	log.Info("client deleted", slog.String("client_id", id.String()))
	return nil
}
