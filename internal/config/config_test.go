package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	require.Equal(t, "mongo", cfg.Database.Backend)
	require.Equal(t, "", cfg.Database.URL)
	require.Equal(t, 10*time.Second, cfg.Database.Timeout)
	require.False(t, cfg.RateLimit.Enabled)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "lexdesk_test")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("MONGODB_TIMEOUT", "3")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)
	require.Equal(t, "lexdesk_test", cfg.Database.Name)
	require.Equal(t, "memory", cfg.Database.Backend)
	require.Equal(t, 3*time.Second, cfg.Database.Timeout)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, "6379", cfg.Redis.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "STORE_BACKEND")
}
