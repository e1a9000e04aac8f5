package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(configFileEnvName, "")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "2024-10", cfg.Storefront.APIVersion)
	assert.Equal(t, 24, cfg.Storefront.PageSize)
	assert.Equal(t, 10*time.Second, cfg.Storefront.Timeout)
	assert.Equal(t, "memory", cfg.Cart.Store)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv(configFileEnvName, "")
	t.Setenv("SHOPIFY_STORE_DOMAIN", "vastara.myshopify.com")
	t.Setenv("SHOPIFY_STOREFRONT_API_TOKEN", "token")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CART_STORE", "redis")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.True(t, cfg.Storefront.Configured())
	assert.Equal(t, "vastara.myshopify.com", cfg.Storefront.StoreDomain)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cart.Store)
	assert.True(t, cfg.OTLP.Enabled)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv(configFileEnvName, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: \"7070\"\nstorefront:\n  page_size: 12\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 12, cfg.Storefront.PageSize)

	_, err = LoadConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
