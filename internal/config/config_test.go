package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Dashboard.TopUsers)
	assert.Equal(t, 10, cfg.Dashboard.TopReturningUsers)
	assert.Equal(t, 10, cfg.Dashboard.RecentActivity)
	assert.Zero(t, cfg.Dashboard.LogLookback)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	body := `
server:
  addr: ":9090"
db:
  dsn: postgres://file
  max_open_conns: 4
dashboard:
  top_users: 3
  log_lookback: 72h
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("DASHBOARD_DB_DSN", "postgres://env")
	t.Setenv("DASHBOARD_DASHBOARD_RECENT_ACTIVITY", "25")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres://env", cfg.DB.DSN, "env overrides file")
	assert.Equal(t, 4, cfg.DB.MaxOpenConns)
	assert.Equal(t, 3, cfg.Dashboard.TopUsers)
	assert.Equal(t, 25, cfg.Dashboard.RecentActivity)
	assert.Equal(t, 72*time.Hour, cfg.Dashboard.LogLookback)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NegativeLimit(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DASHBOARD_DASHBOARD_TOP_USERS", "-1")

	_, err := Load("")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
