package config_test

import (
	"testing"
	"time"

	"github.com/acmebank/clientms/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLIENTMS_DATABASE_URL", "postgres://localhost:5432/clientms?sslmode=disable")
	t.Setenv("CLIENTMS_ACCOUNTS_BASE_URL", "http://localhost:8081")
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, 5*time.Second, cfg.Accounts.Timeout)
		assert.Equal(t, "http://localhost:8081", cfg.Accounts.BaseURL)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CLIENTMS_SERVER_PORT", "9090")
		t.Setenv("CLIENTMS_SERVER_LOG_LEVEL", "debug")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
	})

	t.Run("missing database URL rejected", func(t *testing.T) {
		t.Setenv("CLIENTMS_ACCOUNTS_BASE_URL", "http://localhost:8081")

		cfg, err := config.Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("invalid log level rejected", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CLIENTMS_SERVER_LOG_LEVEL", "verbose")

		cfg, err := config.Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
	})

	t.Run("non-URL accounts base URL rejected", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CLIENTMS_ACCOUNTS_BASE_URL", "not a url")

		cfg, err := config.Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
	})
}
