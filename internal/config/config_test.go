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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
telegram:
  token: "123:abc"
database:
  host: localhost
  name: tracker
  user: tracker
`

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5, cfg.Database.PoolSize)
	assert.Contains(t, cfg.Database.DSN(), "pool_max_conns=5")
	assert.Equal(t, 5*time.Minute, cfg.Schedule.SweepInterval)
	assert.Equal(t, 2*time.Second, cfg.Schedule.PaceInterval)
	assert.Equal(t, "0.0.0.0", cfg.Admin.Host)
	assert.Equal(t, 8080, cfg.Admin.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_FullConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `
telegram:
  token: "123:abc"
  debug: true
database:
  host: db.internal
  port: 5433
  name: tracker
  user: tracker
  password: secret
  sslmode: require
  pool_size: 10
schedule:
  sweep_interval: 10m
  pace_interval: 5s
admin:
  host: 127.0.0.1
  port: 9090
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.True(t, cfg.Telegram.Debug)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 10*time.Minute, cfg.Schedule.SweepInterval)
	assert.Equal(t, 5*time.Second, cfg.Schedule.PaceInterval)
	assert.Equal(t, 9090, cfg.Admin.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "999:xyz")
	t.Setenv("TEST_DB_PASSWORD", "s3cret")

	cfg, err := Load(writeConfig(t, `
telegram:
  token: "${TEST_BOT_TOKEN}"
database:
  host: localhost
  name: tracker
  user: tracker
  password: "${TEST_DB_PASSWORD}"
`))
	require.NoError(t, err)

	assert.Equal(t, "999:xyz", cfg.Telegram.Token)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `
telegram:
  token: ""
database:
  host: ""
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.token is required")
	assert.Contains(t, err.Error(), "database.host is required")
	assert.Contains(t, err.Error(), "database.name is required")
	assert.Contains(t, err.Error(), "database.user is required")
}

func TestLoad_SweepIntervalTooShort(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, minimalConfig+`
schedule:
  sweep_interval: 10s
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below the 1m minimum")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "telegram: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config YAML")
}

func TestDSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "tracker",
		User: "bot", Password: "pw", SSLMode: "disable", PoolSize: 8,
	}
	assert.Equal(t,
		"host=localhost port=5432 dbname=tracker user=bot password=pw sslmode=disable pool_max_conns=8",
		d.DSN())
}

func TestDSN_OmitsUnsetPoolSize(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "tracker",
		User: "bot", Password: "pw", SSLMode: "disable",
	}
	assert.NotContains(t, d.DSN(), "pool_max_conns")
}

func TestDSN_CarriesConfiguredPoolSize(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, minimalConfig+`
  pool_size: 12
`))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Database.PoolSize)
	assert.Contains(t, cfg.Database.DSN(), "pool_max_conns=12")
}
