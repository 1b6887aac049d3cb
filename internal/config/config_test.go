package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(writeConfig(t, "env: local\n"))
	require.NoError(t, err)

	assert.Equal(t, "local", conf.Env)
	assert.False(t, conf.Postgres.Enabled)
	assert.Equal(t, int32(4), conf.Postgres.MaxConns)
	assert.False(t, conf.Postgres.SkipMigrate)
	assert.False(t, conf.Inbox.SeparateMarkReadWrites)
	assert.Equal(t, 100, conf.Inbox.MaxPageSize)
	assert.Equal(t, "127.0.0.1", conf.Listen.BindIP)
	assert.Equal(t, "9100", conf.Listen.Port)
}

func TestLoad_FileValues(t *testing.T) {
	conf, err := Load(writeConfig(t, `
env: prod
postgres:
  enabled: true
  dsn: postgres://inbox:secret@db:5432/backoffice
  max_conns: 8
inbox:
  separate_mark_read_writes: true
listen:
  port: "8080"
  key: staff-key
`))
	require.NoError(t, err)

	assert.Equal(t, "prod", conf.Env)
	assert.True(t, conf.Postgres.Enabled)
	assert.Equal(t, "postgres://inbox:secret@db:5432/backoffice", conf.Postgres.DSN)
	assert.Equal(t, int32(8), conf.Postgres.MaxConns)
	assert.True(t, conf.Inbox.SeparateMarkReadWrites)
	assert.Equal(t, "8080", conf.Listen.Port)
	assert.Equal(t, "staff-key", conf.Listen.ApiKey)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GOLFINBOX_API_KEY", "from-env")
	conf, err := Load(writeConfig(t, "listen:\n  key: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", conf.Listen.ApiKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
