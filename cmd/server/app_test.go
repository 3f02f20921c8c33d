package main

import (
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todos-api/internal/config"
)

func newAppTestConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "error"},
		Database: config.DatabaseConfig{URL: "postgres://localhost:5432/todos"},
		Auth: config.AuthConfig{
			JWTSecret:            "app-test-secret-0123456789abcdef!!",
			TokenLifetimeMinutes: 60,
		},
	}
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	t.Run("wires every dependency", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		app, err := newApplication(newAppTestConfig(), slog.Default(), db)

		require.NoError(t, err)
		assert.NotNil(t, app.tokens)
		assert.NotNil(t, app.authenticator)
		assert.NotNil(t, app.userStore)
		assert.NotNil(t, app.todoStore)
		assert.NotNil(t, app.itemStore)

		router, err := app.setupRouter()
		require.NoError(t, err)
		assert.NotNil(t, router)
	})

	t.Run("rejects a short jwt secret", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		cfg := newAppTestConfig()
		cfg.Auth.JWTSecret = "too-short"

		app, err := newApplication(cfg, slog.Default(), db)

		require.Error(t, err)
		assert.Nil(t, app)
		assert.Contains(t, err.Error(), "token codec")
	})
}
