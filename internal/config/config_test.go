package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: a config file with only the secret key
		path := writeConfig(t, "session:\n  secret-key: secret\n")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: every other key has its default
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "user_session", conf.Session.CookieName)
		assert.Equal(t, 24*time.Hour, conf.Session.TTL)
		assert.Equal(t, 10*time.Minute, conf.Session.SweepInterval)
	})

	t.Run("File values", func(t *testing.T) {
		path := writeConfig(t, `log-level: debug
http-port: "8081"
storage: redis
redis:
  host: redis
  port: "6380"
session:
  cookie-name: ttt
  secret-key: secret
  ttl: 1h
  sweep-interval: 1m
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "ttt", conf.Session.CookieName)
		assert.Equal(t, time.Hour, conf.Session.TTL)
		assert.Equal(t, time.Minute, conf.Session.SweepInterval)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8081\"\nsession:\n  secret-key: secret\n")
		t.Setenv("HTTP_PORT", "7070")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Missing secret key", func(t *testing.T) {
		path := writeConfig(t, "log-level: info\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key")
	})

	t.Run("Unknown storage", func(t *testing.T) {
		path := writeConfig(t, "storage: sqlite\nsession:\n  secret-key: secret\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage")
	})

	t.Run("Missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
