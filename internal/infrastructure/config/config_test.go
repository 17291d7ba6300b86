package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "retail-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sandbox", cfg.Square.Environment)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"wss://relay.damus.io"}, cfg.Nostr.Relays)
	assert.Equal(t, 10, cfg.Nostr.TimeoutSeconds)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RETAIL_APP_PORT", "9090")
	t.Setenv("RETAIL_DATABASE_DBNAME", "retail_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "retail_test", cfg.Database.DBName)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "retail",
		Password: "secret",
		DBName:   "retail",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=retail password=secret dbname=retail sslmode=require",
		cfg.DSN())
}

func TestSquareConfig_BaseURL(t *testing.T) {
	t.Run("Sandbox", func(t *testing.T) {
		cfg := SquareConfig{Environment: "sandbox"}
		assert.Equal(t, "https://connect.squareupsandbox.com", cfg.BaseURL())
	})

	t.Run("Production", func(t *testing.T) {
		cfg := SquareConfig{Environment: "production"}
		assert.Equal(t, "https://connect.squareup.com", cfg.BaseURL())
	})
}

func TestLoad_InvalidSquareEnvironment(t *testing.T) {
	t.Setenv("RETAIL_SQUARE_ENVIRONMENT", "staging")

	_, err := Load()
	assert.Error(t, err)
}
