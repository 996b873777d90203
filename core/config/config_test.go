package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Reconcile.Margin)
	assert.Equal(t, 4, cfg.Reconcile.Workers)
	assert.Equal(t, "reports", cfg.Reconcile.OutputDir)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "commissions", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("RECONCILE_MARGIN", "0.05")
	t.Setenv("RECONCILE_WORKERS", "8")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Reconcile.Margin)
	assert.Equal(t, 8, cfg.Reconcile.Workers)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "SERVER_API_KEY=from-dotenv\nRECONCILE_CACHE_TTL_SECONDS=60\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_API_KEY")
		os.Unsetenv("RECONCILE_CACHE_TTL_SECONDS")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Server.ApiKey)
	assert.Equal(t, 60, cfg.Reconcile.CacheTTLSeconds)
	assert.Equal(t, float64(60), cfg.Reconcile.CacheTTL().Seconds())
}
