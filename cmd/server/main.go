// Package main implements the entry point for the client management API
// server, which maintains the client registry and coordinates with the
// accounts service before deleting a client.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/acmebank/clientms/internal/config"
	"github.com/acmebank/clientms/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, builds the dependency graph and starts the HTTP
// server. Separated from main so errors propagate instead of os.Exit-ing
// past deferred cleanup.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	router, err := app.setupRouter()
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to set up router: %w", err)
	}

	return app.startHTTPServer(context.Background(), router)
}
