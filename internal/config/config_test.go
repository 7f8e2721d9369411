package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"APP_ENV", "HTTP_ADDR", "DATABASE_URL",
		"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET",
		"ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"COOKIE_SECURE", "COOKIE_PATH",
		"UPLOAD_DIR", "STATIC_BASE", "PUBLIC_BASE_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "/api/v1/auth", cfg.CookiePath)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("REFRESH_TOKEN_TTL", "72h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://shop.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 72*time.Hour, cfg.RefreshTTL)
	assert.True(t, cfg.CookieSecure)
	// trailing slash stripped so handlers can join paths safely
	assert.Equal(t, "https://shop.example.com", cfg.PublicBaseURL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "fifteen minutes")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AccessTTLMustBeShorterThanRefreshTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "24h")
	t.Setenv("REFRESH_TOKEN_TTL", "1h")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_SecretsMustDiffer(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCESS_TOKEN_SECRET", "same-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "same-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProdRejectsDefaultSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("COOKIE_SECURE", "true")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("ACCESS_TOKEN_SECRET", "real-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "real-refresh-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDev())
}

func TestLoad_ProdRequiresSecureCookies(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("ACCESS_TOKEN_SECRET", "real-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "real-refresh-secret")
	t.Setenv("COOKIE_SECURE", "false")

	_, err := Load()
	assert.Error(t, err)
}
