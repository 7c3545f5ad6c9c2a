package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: everything else takes its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "first", conf.DefaultPolicy)
		assert.Equal(t, int64(1048576), conf.MaxInputBytes)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.OutcomeTTL)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file asking for the first policy and an env asking for the last
		path := writeConfig(t, "default-policy: first\nredis:\n  host: cache\n")
		t.Setenv("DEFAULT_POLICY", "last")
		t.Setenv("REDIS_OUTCOME_TTL", "5m")

		// When: loading it
		conf, err := Load(path)

		// Then: env values win
		require.NoError(t, err)
		assert.Equal(t, "last", conf.DefaultPolicy)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 5*time.Minute, conf.Redis.OutcomeTTL)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)

		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
