package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.DBPath = "/var/lib/momo/momo.db"
	cfg.Sender = "M-Money"

	path := filepath.Join(t.TempDir(), "momo.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "momo_transactions.db", cfg.DBPath)
	assert.Equal(t, "modified_sms_v2.xml", cfg.XMLPath)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Sender)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: other.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.DBPath)
	assert.Equal(t, ":5000", cfg.ListenAddr)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestResolve_ExplicitMissingFails(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_DefaultPathMayBeMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvDBPath, "")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default().DBPath, cfg.DBPath)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: file.db\nlisten_addr: \":8080\"\n"), 0o644))
	t.Setenv(EnvDBPath, "env.db")
	t.Setenv(EnvListenAddr, "  ")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ListenAddr, "blank env values are ignored")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvLogLevel: "debug", EnvSender: "M-Money", EnvXMLPath: "x.xml"}
	cfg := Default()
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "M-Money", cfg.Sender)
	assert.Equal(t, "x.xml", cfg.XMLPath)
	assert.Equal(t, "momo_transactions.db", cfg.DBPath)
}
