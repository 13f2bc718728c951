package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestYAML(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_config.yaml"), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir()) // no YAML files, pure defaults

	cfg := Load()

	assert.Equal(t, "RealEstateManagerBot", cfg.App.Name)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "yandexgpt-lite", cfg.Yandex.Model)
	assert.Equal(t, 0.6, cfg.Yandex.Temperature)
	assert.Equal(t, 1500, cfg.Yandex.MaxTokens)
	assert.Equal(t, "memory", cfg.Session.StoreType)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, "data/catalog.json", cfg.Catalog.Path)
	assert.Equal(t, "file", cfg.Leads.StoreType)
	assert.Equal(t, "data/contacts.json", cfg.Leads.FilePath)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("SESSION_STORE_TYPE", "redis")
	t.Setenv("YANDEX_TEMPERATURE", "0.3")
	t.Setenv("TELEGRAM_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "redis", cfg.Session.StoreType)
	assert.Equal(t, 0.3, cfg.Yandex.Temperature)
	assert.False(t, cfg.Telegram.Enabled)
}

func TestYAMLFallback(t *testing.T) {
	dir := t.TempDir()
	writeTestYAML(t, dir, `
api:
  port: 7070
session:
  store_type: redis
`)
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("API_PORT", "")

	cfg := Load()

	assert.Equal(t, 7070, cfg.API.Port)
	assert.Equal(t, "redis", cfg.Session.StoreType)
}
