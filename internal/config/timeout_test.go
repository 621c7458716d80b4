package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeoutValues(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.DBInitTimeout)
	assert.Equal(t, 5*time.Second, cfg.DBCloseTimeout)
	assert.Equal(t, 5*time.Second, cfg.RedisConnTimeout)
	assert.Equal(t, 5*time.Second, cfg.RedisCloseTimeout)
	assert.Equal(t, 5*time.Second, cfg.CacheInitTimeout)
	assert.Equal(t, 5*time.Second, cfg.CacheCloseTimeout)
	assert.Equal(t, 5*time.Second, cfg.ServerShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.UserServiceTimeout)
	assert.Equal(t, 15*time.Second, cfg.OAuthTimeout)
}

func TestTimeoutConfigurationFromEnv(t *testing.T) {
	tests := []struct {
		envKey   string
		envValue string
		getter   func(*Config) time.Duration
		expected time.Duration
	}{
		{"DB_INIT_TIMEOUT", "60s", func(c *Config) time.Duration { return c.DBInitTimeout }, time.Minute},
		{"REDIS_CONN_TIMEOUT", "10s", func(c *Config) time.Duration { return c.RedisConnTimeout }, 10 * time.Second},
		{"CACHE_INIT_TIMEOUT", "3s", func(c *Config) time.Duration { return c.CacheInitTimeout }, 3 * time.Second},
		{"SERVER_SHUTDOWN_TIMEOUT", "30s", func(c *Config) time.Duration { return c.ServerShutdownTimeout }, 30 * time.Second},
		{"REDIS_CLOSE_TIMEOUT", "3s", func(c *Config) time.Duration { return c.RedisCloseTimeout }, 3 * time.Second},
		{"CACHE_CLOSE_TIMEOUT", "2s", func(c *Config) time.Duration { return c.CacheCloseTimeout }, 2 * time.Second},
		{"DB_CLOSE_TIMEOUT", "8s", func(c *Config) time.Duration { return c.DBCloseTimeout }, 8 * time.Second},
		{"AUTH_CODE_TTL", "300", func(c *Config) time.Duration { return c.AuthCodeTTL }, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envValue)
			cfg := Load()
			assert.Equal(t, tt.expected, tt.getter(cfg), "%s should be configurable via env", tt.envKey)
		})
	}
}

func TestTimeoutConfigurationInvalidValues(t *testing.T) {
	t.Setenv("DB_INIT_TIMEOUT", "invalid")
	t.Setenv("CACHE_INIT_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.DBInitTimeout)
	assert.Equal(t, 5*time.Second, cfg.CacheInitTimeout)
}
