package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "stub", cfg.ESign.Provider)
	assert.Equal(t, 10, cfg.Documents.MaxPerRun)
	assert.Equal(t, "pdf", cfg.Documents.OutputFormat)
	assert.True(t, cfg.Events.Outbox)
	assert.Equal(t, 15*time.Minute, cfg.Storage.URLTTL)
	assert.Equal(t, "secret", cfg.Storage.URLSecret)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:@localhost:5432/dealdesk?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_RemoteProviderNeedsEndpoint(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ESIGN_PROVIDER", "remote")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ESIGN_BASE_URL", "https://sign.example.com/v1")
	t.Setenv("ESIGN_WEBHOOK_SECRET", "whsec")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "remote", cfg.ESign.Provider)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}
