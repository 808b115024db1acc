package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8089, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Remote.PollInterval)
	assert.Equal(t, 300*time.Millisecond, cfg.Player.FadeDuration)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scastd.yaml")
	data := []byte(`
server:
  port: 9090
remote:
  baseURL: https://ads.example.com/api
  pollInterval: 30s
cache:
  dir: /tmp/scast-cache
player:
  fadeDuration: 150ms
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://ads.example.com/api", cfg.Remote.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Remote.PollInterval)
	assert.Equal(t, "/tmp/scast-cache", cfg.Cache.Dir)
	assert.Equal(t, 150*time.Millisecond, cfg.Player.FadeDuration)

	// Unset fields keep their defaults.
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "/var/lib/slidecast/state.db", cfg.Storage.Path)
}

func TestLoadRejectsBadExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scastd.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("SCAST_SERVER_PORT", "7070")
	t.Setenv("SCAST_REMOTE_URL", "https://ads.example.com/api")
	t.Setenv("SCAST_PLAYER_FADE_DURATION", "0s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "https://ads.example.com/api", cfg.Remote.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Player.FadeDuration, "fading can be disabled via env")
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad remote URL", func(c *Config) { c.Remote.BaseURL = "not a url" }},
		{"poll interval too short", func(c *Config) { c.Remote.PollInterval = 100 * time.Millisecond }},
		{"missing cache dir", func(c *Config) { c.Cache.Dir = "" }},
		{"missing storage path", func(c *Config) { c.Storage.Path = "" }},
		{"zero rate limit", func(c *Config) { c.Player.PairRateLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
