package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsServerURL(t *testing.T) {
	t.Setenv("SYCON_SERVER_URL", "")
	t.Setenv("SYCON_USERNAME", "alice")
	t.Setenv("SYCON_PASSWORD", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, "alice", cfg.Username)
	assert.False(t, cfg.ExportEnabled())
}

func TestLoadConfigRequiresCredentials(t *testing.T) {
	t.Setenv("SYCON_USERNAME", "alice")
	t.Setenv("SYCON_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestExportEnabled(t *testing.T) {
	t.Setenv("SYCON_SERVER_URL", "http://localhost:1234")
	t.Setenv("SYCON_USERNAME", "alice")
	t.Setenv("SYCON_PASSWORD", "s3cret")
	t.Setenv("INFLUXDB_URL", "http://localhost:8086")
	t.Setenv("INFLUXDB_TOKEN", "tok")
	t.Setenv("INFLUXDB_ORG", "org")
	t.Setenv("INFLUXDB_BUCKET", "telemetry")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.ExportEnabled())
	assert.Equal(t, "http://localhost:1234", cfg.ServerURL)
}
