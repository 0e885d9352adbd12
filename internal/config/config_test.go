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
	t.Setenv(FileEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, 5, cfg.Wizard.MaxImages)
	assert.Equal(t, int64(30), cfg.Wizard.MaxVideoMB)
	assert.Equal(t, 30*time.Second, cfg.Wizard.MaxVideoDuration)
	assert.Equal(t, "/my-ads", cfg.Wizard.SuccessPath)
	assert.Zero(t, cfg.Wizard.PostCooldown)
	assert.Equal(t, uint32(5), cfg.Marketplace.BreakerFailures)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zitheke.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
marketplace:
  base_url: https://api.zitheke.test
  timeout: 15s
wizard:
  idle_ttl: 45m
`), 0o644))

	t.Setenv(FileEnv, path)
	t.Setenv("ZITHEKE_WIZARD_POST_COOLDOWN", "1m")
	t.Setenv("ZITHEKE_SERVER_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "https://api.zitheke.test", cfg.Marketplace.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Marketplace.Timeout)
	assert.Equal(t, 45*time.Minute, cfg.Wizard.IdleTTL)
	assert.Equal(t, time.Minute, cfg.Wizard.PostCooldown)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv(FileEnv, "")
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no port", func(c *Config) { c.Server.Port = "" }},
		{"no marketplace", func(c *Config) { c.Marketplace.BaseURL = "" }},
		{"s3 without bucket", func(c *Config) { c.Storage.Provider = "s3"; c.Storage.Bucket = "" }},
		{"no images allowed", func(c *Config) { c.Wizard.MaxImages = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMB(t *testing.T) {
	assert.Equal(t, int64(30*1024*1024), MB(30))
}
