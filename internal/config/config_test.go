package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConValoresMinimos(t *testing.T) {
	t.Setenv("JWT_SECRET", "clave-de-prueba-suficientemente-larga-123")
	t.Setenv("IDENTITY_URL", "https://identidad.luna27.mx")
	t.Setenv("IDENTITY_SERVICE_KEY", "service-key")

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "https://identidad.luna27.mx", cfg.IdentityURL)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRespetaEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "clave-de-prueba-suficientemente-larga-123")
	t.Setenv("IDENTITY_URL", "https://identidad.luna27.mx")
	t.Setenv("IDENTITY_SERVICE_KEY", "service-key")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.luna27.mx")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "https://app.luna27.mx", cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}
