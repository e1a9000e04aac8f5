package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunReturnsConfigErrors(t *testing.T) {
	t.Setenv("STOREFRONT_CONFIG_FILE", "")

	err := run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestRunReturnsServerErrors(t *testing.T) {
	t.Setenv("STOREFRONT_CONFIG_FILE", "")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("LOG_LEVEL", "error")

	err := run(nil)
	assert.ErrorContains(t, err, "http server")
}
