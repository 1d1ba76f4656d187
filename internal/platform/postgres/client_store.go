package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/acmebank/clientms/internal/domain"
	"github.com/acmebank/clientms/internal/platform/logger"
	"github.com/acmebank/clientms/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const pgUniqueViolationCode = "23505"

// Unique constraint names from the clients migration. Used to turn a 23505
// into the field-specific duplicate error.
const (
	clientsDNIConstraint   = "clients_dni_key"
	clientsEmailConstraint = "clients_email_lower_key"
)

// PostgresClientStore implements the store.ClientStore interface
// using a PostgreSQL database as the storage backend.
type PostgresClientStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresClientStore creates a new PostgreSQL implementation of the
// ClientStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresClientStore(db store.DBTX, logger *slog.Logger) *PostgresClientStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresClientStore{
		db:     db,
		logger: logger.With(slog.String("component", "client_store")),
	}
}

// Ensure PostgresClientStore implements store.ClientStore interface
var _ store.ClientStore = (*PostgresClientStore)(nil)

// mapUniqueViolation converts a PostgreSQL unique-constraint violation into
// the matching store error, or returns nil if err is not a unique violation.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolationCode {
		return nil
	}

	switch pgErr.ConstraintName {
	case clientsDNIConstraint:
		return store.ErrDNIExists
	case clientsEmailConstraint:
		return store.ErrEmailExists
	default:
		return store.ErrDuplicate
	}
}

// Create implements store.ClientStore.Create
// It saves a new client to the database, handling domain validation.
// Unique violations on DNI/email map to store.ErrDNIExists/ErrEmailExists.
func (s *PostgresClientStore) Create(ctx context.Context, client *domain.Client) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := client.Validate(); err != nil {
		log.Warn("client validation failed during create",
			slog.String("error", err.Error()),
			slog.String("client_id", client.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO clients (id, first_name, last_name, dni, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		client.ID,
		client.FirstName,
		client.LastName,
		client.DNI,
		client.Email,
		client.CreatedAt,
		client.UpdatedAt,
	)

	if err != nil {
		if dupErr := mapUniqueViolation(err); dupErr != nil {
			log.Warn("unique violation during client creation",
				slog.String("error", err.Error()),
				slog.String("client_id", client.ID.String()))
			return dupErr
		}

		log.Error("failed to create client",
			slog.String("error", err.Error()),
			slog.String("client_id", client.ID.String()))
		return store.NewStoreError("client", "create", "failed to insert client", err)
	}

	log.Info("client created successfully",
		slog.String("client_id", client.ID.String()),
		slog.String("dni", client.DNI))
	return nil
}

// GetByID implements store.ClientStore.GetByID
// Returns store.ErrClientNotFound if the client does not exist.
func (s *PostgresClientStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, first_name, last_name, dni, email, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var client domain.Client
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.DNI,
		&client.Email,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("client not found", slog.String("client_id", id.String()))
			return nil, store.ErrClientNotFound
		}

		log.Error("failed to get client by ID",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return nil, store.NewStoreError("client", "get", "failed to query client", err)
	}

	return &client, nil
}

// List implements store.ClientStore.List
// Rows come back in store order; no ordering is promised to callers.
func (s *PostgresClientStore) List(ctx context.Context) ([]*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, first_name, last_name, dni, email, created_at, updated_at
		FROM clients
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list clients", slog.String("error", err.Error()))
		return nil, store.NewStoreError("client", "list", "failed to query clients", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var clients []*domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.FirstName,
			&client.LastName,
			&client.DNI,
			&client.Email,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			log.Error("failed to scan client row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("client", "list", "failed to scan client row", err)
		}
		clients = append(clients, &client)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating client rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("client", "list", "error iterating client rows", err)
	}

	return clients, nil
}

// Update implements store.ClientStore.Update
// Returns store.ErrClientNotFound if no row with the client's ID exists.
// Unique violations on DNI/email map to store.ErrDNIExists/ErrEmailExists.
func (s *PostgresClientStore) Update(ctx context.Context, client *domain.Client) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := client.Validate(); err != nil {
		log.Warn("client validation failed during update",
			slog.String("error", err.Error()),
			slog.String("client_id", client.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, dni = $4, email = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		client.ID,
		client.FirstName,
		client.LastName,
		client.DNI,
		client.Email,
		client.UpdatedAt,
	)
	if err != nil {
		if dupErr := mapUniqueViolation(err); dupErr != nil {
			log.Warn("unique violation during client update",
				slog.String("error", err.Error()),
				slog.String("client_id", client.ID.String()))
			return dupErr
		}

		log.Error("failed to update client",
			slog.String("error", err.Error()),
			slog.String("client_id", client.ID.String()))
		return store.NewStoreError("client", "update", "failed to update client", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("client not found during update", slog.String("client_id", client.ID.String()))
		return store.ErrClientNotFound
	}

	log.Info("client updated successfully", slog.String("client_id", client.ID.String()))
	return nil
}

// Delete implements store.ClientStore.Delete
// Returns store.ErrClientNotFound if the client does not exist.
func (s *PostgresClientStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete client",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return store.NewStoreError("client", "delete", "failed to delete client", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("client not found during delete", slog.String("client_id", id.String()))
		return store.ErrClientNotFound
	}

	log.Info("client deleted successfully", slog.String("client_id", id.String()))
	return nil
}

// ExistsByDNI implements store.ClientStore.ExistsByDNI
func (s *PostgresClientStore) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE dni = $1)`,
		dni,
	).Scan(&exists)
	if err != nil {
		s.logger.Error("failed to check DNI existence", slog.String("error", err.Error()))
		return false, store.NewStoreError("client", "exists_by_dni", "failed to check DNI existence", err)
	}
	return exists, nil
}

// ExistsByEmail implements store.ClientStore.ExistsByEmail
// The comparison is case-insensitive, matching the uniqueness invariant.
func (s *PostgresClientStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE lower(email) = lower($1))`,
		email,
	).Scan(&exists)
	if err != nil {
		s.logger.Error("failed to check email existence", slog.String("error", err.Error()))
		return false, store.NewStoreError("client", "exists_by_email", "failed to check email existence", err)
	}
	return exists, nil
}
