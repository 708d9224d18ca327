package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "athena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
solver:
  url: http://solver:5000
  timeout: 10s
store:
  backend: redis
redis:
  addr: redis:6379
  ttl: 1h
`)
	t.Setenv("ATHENA_SOLVER_URL", "http://override:5000")
	t.Setenv("ATHENA_REDIS_DB", "3")
	t.Setenv("ATHENA_METRICS_ENABLED", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://override:5000", cfg.Solver.URL)
	assert.Equal(t, 10*time.Second, cfg.Solver.Timeout)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "athena:session:", cfg.Redis.Prefix, "unset keys keep their defaults")
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "store: [nope"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "store:\n  backend: sqlite\n"))
	assert.ErrorContains(t, err, "sqlite")

	t.Setenv("ATHENA_REDIS_DB", "not-a-number")
	_, err = config.Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestLoad_EncryptionKeys(t *testing.T) {
	t.Setenv("ATHENA_STORE_ENCRYPTION_KEY", "bmV3")
	t.Setenv("ATHENA_STORE_FALLBACK_KEYS", "b2xkMQ==,b2xkMg==")

	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "bmV3", cfg.Store.EncryptionKey)
	assert.Equal(t, []string{"b2xkMQ==", "b2xkMg=="}, cfg.Store.FallbackKeys)

	cfg.Store.EncryptionKey = ""
	assert.Error(t, cfg.Validate())
}
