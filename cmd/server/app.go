package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/acmebank/clientms/internal/config"
	"github.com/acmebank/clientms/internal/platform/accounts"
	"github.com/acmebank/clientms/internal/platform/postgres"
	"github.com/acmebank/clientms/internal/service"
)

// application holds the resolved dependency graph for the server.
type application struct {
	config        *config.Config
	logger        *slog.Logger
	db            *sql.DB
	clientService service.ClientService
}

// newApplication builds the full dependency graph: database connection,
// migrations, stores, the accounts collaborator and the client service.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(db); err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	clientStore := postgres.NewPostgresClientStore(db, logger)

	accountsClient := accounts.NewClient(
		cfg.Accounts.BaseURL,
		cfg.Accounts.Timeout,
		logger,
	)

	clientService, err := service.NewClientService(clientStore, accountsClient, logger)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create client service: %w", err)
	}

	return &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		clientService: clientService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
