package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GO_ENV", "LOG_LEVEL", "STORE_DRIVER", "SEED_FILE", "DATABASE_URL",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_SSLMODE",
		"JWT_SECRET", "CHECKOUT_REJECT_OVERSELL", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.False(t, cfg.RejectOversell)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=marketplace sslmode=disable", cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9000")
	t.Setenv("GO_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CHECKOUT_REJECT_OVERSELL", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DSN())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.True(t, cfg.RejectOversell)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"port not number", "POSTGRES_PORT", "abc", "POSTGRES_PORT must be number"},
		{"bad bool", "CHECKOUT_REJECT_OVERSELL", "maybe", "CHECKOUT_REJECT_OVERSELL must be bool"},
		{"bad duration", "SHUTDOWN_TIMEOUT", "soon", "SHUTDOWN_TIMEOUT must be duration"},
		{"bad level", "LOG_LEVEL", "loud", "LOG_LEVEL must be"},
		{"bad driver", "STORE_DRIVER", "mysql", "STORE_DRIVER must be postgres or memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_JWTSecretRequiredOutsideDev(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "prod")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}
