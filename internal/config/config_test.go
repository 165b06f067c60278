package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("KIOTVIET_RETAILER", "ntv")
	t.Setenv("KIOTVIET_CLIENT_ID", "client-id")
	t.Setenv("KIOTVIET_CLIENT_SECRET", "client-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ntv", cfg.Retailer)
	assert.Equal(t, "https://public.kiotapi.com", cfg.BaseURL)
	assert.Equal(t, "https://id.kiotviet.vn/connect/token", cfg.AuthURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.CacheEnabled)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("KIOTVIET_BASE_URL", "http://localhost:9090")
	t.Setenv("PORT", "3000")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090", cfg.BaseURL)
	assert.Equal(t, "3000", cfg.Port)
	assert.False(t, cfg.CacheEnabled)
	assert.True(t, cfg.Debug)
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("KIOTVIET_RETAILER", "ntv")
	t.Setenv("KIOTVIET_CLIENT_ID", "")
	t.Setenv("KIOTVIET_CLIENT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KIOTVIET_CLIENT_ID")
	assert.Contains(t, err.Error(), "KIOTVIET_CLIENT_SECRET")
	assert.NotContains(t, err.Error(), "KIOTVIET_RETAILER")
}
