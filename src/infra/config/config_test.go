package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employeeapi/src/infra/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, config.StorePostgres, cfg.Store.Kind)
	assert.Equal(t, "employees", cfg.Database.Name)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_STORE", "memory")
	t.Setenv("APP_DB_HOST", "db")
	t.Setenv("APP_DB_NAME", "hr")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("APP_METRICS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, config.StoreMemory, cfg.Store.Kind)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/hr?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("APP_PORT", "not-a-number")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server config")
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("APP_STORE", "mongo")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported store "mongo"`)
	})
}
