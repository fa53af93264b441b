package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "planforge", cfg.ServiceName)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultSchemaDir, cfg.SchemaDir)
	assert.Equal(t, 256, cfg.PlanCacheSize)
	assert.Equal(t, 5*time.Minute, cfg.PlanCacheTTL)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DATA_DIR", "/data/catalog")
	t.Setenv("PLAN_CACHE_SIZE", "64")
	t.Setenv("PLAN_CACHE_TTL", "30s")
	t.Setenv("API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/data/catalog", cfg.DataDir)
	assert.Equal(t, 64, cfg.PlanCacheSize)
	assert.Equal(t, 30*time.Second, cfg.PlanCacheTTL)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestLoadInvalidValues(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative cache size", func(t *testing.T) {
		t.Setenv("PLAN_CACHE_SIZE", "-1")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad cache TTL", func(t *testing.T) {
		t.Setenv("PLAN_CACHE_TTL", "five minutes")
		_, err := Load()
		assert.Error(t, err)
	})
}
