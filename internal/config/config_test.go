package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.Snapshot.TTL)
	assert.Equal(t, 10, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "inventory:", cfg.Redis.Prefix)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/inventory")
	t.Setenv("INVENTORY_INVENTORY_LOW_STOCK_THRESHOLD", "5")
	t.Setenv("INVENTORY_SNAPSHOT_TTL", "45s")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/inventory", cfg.Database.URL)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 45*time.Second, cfg.Snapshot.TTL)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "http:\n  addr: \":9090\"\nredis:\n  addr: \"cache:6379\"\nratelimit:\n  rps: 2\n  burst: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2.0, cfg.RateLimit.RPS)
	assert.Equal(t, 4, cfg.RateLimit.Burst)
}

func TestLoad_Invalid(t *testing.T) {
	v := New()
	v.Set("inventory.low_stock_threshold", -1)
	v.Set("ratelimit.burst", 0)

	_, err := Load(v, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "low_stock_threshold")
	assert.Contains(t, err.Error(), "ratelimit")
}
