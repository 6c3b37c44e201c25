package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8642", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "ripple", cfg.DBName)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9001", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestConfigValidate(t *testing.T) {
	base := Config{
		Port:      "8642",
		JWTSecret: "secret",
		DBDriver:  "postgres",
		Env:       "development",
	}

	t.Run("development accepts weak settings", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := base
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg := base
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base
		cfg.DBDriver = "oracle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects short secret", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production demands strong DB settings", func(t *testing.T) {
		cfg := base
		cfg.Env = "production"
		cfg.JWTSecret = strings.Repeat("s", 32)
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())

		cfg.DBPassword = "8bb2f34f06f1"
		cfg.DBSSLMode = "disable"
		assert.Error(t, cfg.Validate())

		cfg.DBSSLMode = "require"
		assert.NoError(t, cfg.Validate())
	})
}
