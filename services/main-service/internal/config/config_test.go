package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/ewm")
		t.Setenv("APP_ENV", "dev")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "http://localhost:9090", cfg.StatsURL)
		assert.Equal(t, "ewm-main-service", cfg.StatsApp)
		assert.Equal(t, "ewm.events", cfg.RabbitExchange)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTLDetails)
		assert.Equal(t, 15*time.Second, cfg.CacheTTLRanking)
		assert.True(t, cfg.RLEnabled)
	})

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("rabbit required outside dev", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/ewm")
		t.Setenv("APP_ENV", "prod")
		t.Setenv("RABBIT_URL", "")

		_, err := Load()
		require.Error(t, err)

		t.Setenv("RABBIT_URL", "amqp://localhost")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "amqp://localhost", cfg.RabbitURL)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/ewm")
		t.Setenv("APP_ENV", "dev")
		t.Setenv("HTTP_ADDR", ":9999")
		t.Setenv("CACHE_TTL_DETAILS", "90s")
		t.Setenv("RL_IP_LIMIT", "250")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.HTTPAddr)
		assert.Equal(t, 90*time.Second, cfg.CacheTTLDetails)
		assert.Equal(t, 250, cfg.RLLimit)
	})

	t.Run("garbage duration falls back", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/ewm")
		t.Setenv("APP_ENV", "dev")
		t.Setenv("CACHE_TTL_DETAILS", "soon")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTLDetails)
	})
}
