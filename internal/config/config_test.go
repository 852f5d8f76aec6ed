package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
database:
  uri: "mongodb://db:27017"
  name: "titangym_test"
jwt:
  secret: "file-secret"
  expiration: "24h"
insight:
  api_key: "file-key"
  timeout: "3s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.Equal(t, "titangym_test", cfg.Database.Name)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "file-key", cfg.Insight.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Insight.Timeout)

	// Keys the file left out keep their defaults.
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Insight.Endpoint)
	assert.Equal(t, "gemini-2.0-flash", cfg.Insight.Model)
}
