package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finwise/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "finwise", cfg.DB.Name)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 20, cfg.Policy.FirstNBonusThreshold)
	assert.True(t, cfg.Policy.PenaltyEnabled)
	assert.Equal(t, "en", cfg.Translate.DefaultLanguage)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("POLICY_PENALTY_ENABLED", "false")
	t.Setenv("AUTH_TOKEN_TTL", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Policy.PenaltyEnabled)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "postgres://postgres:pw@db:5432/finwise?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_MissingSecret(t *testing.T) {
	for name, secret := range map[string]string{"Empty": "", "Blank": "   "} {
		t.Run(name, func(t *testing.T) {
			t.Setenv("AUTH_SECRET", secret)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "AUTH_SECRET")
		})
	}
}
