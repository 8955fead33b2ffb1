package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadShippedConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadConfig("../../configs")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll("uploads") })
	return cfg
}

func TestLoadConfig(t *testing.T) {
	t.Run("shipped yaml", func(t *testing.T) {
		cfg := loadShippedConfig(t)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.Mode)
		assert.Equal(t, "venus_handbook", cfg.Database.DBName)
		assert.Equal(t, 30, cfg.Quiz.SessionTTLMinutes)
		assert.Equal(t, 12, cfg.Catalog.ItemsPerPage)
		assert.Equal(t, 300, cfg.Catalog.CacheTTLSeconds)
	})

	t.Run("jwt lifetime is 72 hours ahead", func(t *testing.T) {
		cfg := loadShippedConfig(t)

		assert.Equal(t, 72, cfg.JWT.ExpireHours)
		assert.Equal(t, 72*time.Hour, cfg.JWT.Expiration())
		// 有效期必须落在未来，否则所有签发的令牌立即过期
		assert.True(t, cfg.JWT.Expiration() > 0)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret-from-env")
		cfg := loadShippedConfig(t)

		assert.Equal(t, "secret-from-env", cfg.JWT.Secret)
	})
}

func TestJWTConfigDefaults(t *testing.T) {
	j := JWTConfig{}
	assert.Equal(t, time.Duration(0), j.Expiration())

	j.ExpireHours = 24
	assert.Equal(t, 24*time.Hour, j.Expiration())
}
