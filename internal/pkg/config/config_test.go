package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("JWT_REFRESH_EXPIRY", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.Pagination.PageSize)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "migrations", cfg.Migrations.Path)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("SESSION_DRIVER", "memory")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("JWT_REFRESH_EXPIRY", "2h")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, 2*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown storage", key: "STORAGE_DRIVER", val: "mysql"},
		{name: "unknown session driver", key: "SESSION_DRIVER", val: "cookie"},
		{name: "zero page size", key: "PAGE_SIZE", val: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p@ss", Database: "taxi", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/taxi?sslmode=disable", c.URL())
}
