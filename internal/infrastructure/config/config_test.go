package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.Validation.Rules)
	assert.False(t, cfg.Validation.Parallel)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, filepath.Join(".gedcheck", "snapshots.db"), cfg.SQLite.Path)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEDCHECK_LOG_LEVEL", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_DefaultFile(t *testing.T) {
	t.Setenv("GEDCHECK_LOG_LEVEL", "")
	t.Setenv("OPENAI_API_KEY", "")

	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"US22", "US26"}, cfg.Validation.Rules)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEDCHECK_LOG_LEVEL", "DEBUG")
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("GEDCHECK_LOG_LEVEL", "")

	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{name: "invalid yaml", yaml: "validation: [", errMsg: "parsing config file"},
		{name: "unknown output format", yaml: "output:\n  format: xml\n", errMsg: "output.format"},
		{name: "unknown log level", yaml: "log:\n  level: loud\n", errMsg: "log.level"},
		{name: "unknown log format", yaml: "log:\n  format: xml\n", errMsg: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
			require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(tt.yaml), 0644))

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	err := WriteDefault(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWrite_RoundTrip(t *testing.T) {
	t.Setenv("GEDCHECK_LOG_LEVEL", "")
	t.Setenv("OPENAI_API_KEY", "")

	dir := t.TempDir()
	cfg := Default()
	cfg.Validation.Parallel = true
	cfg.Output.Format = "json"
	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, loaded.Validation.Parallel)
	assert.Equal(t, "json", loaded.Output.Format)
}

func TestSQLitePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/project", ".gedcheck", "snapshots.db"), cfg.SQLitePath("/project"))

	cfg.SQLite.Path = "/var/lib/gedcheck.db"
	assert.Equal(t, "/var/lib/gedcheck.db", cfg.SQLitePath("/project"))

	cfg.SQLite.Path = ":memory:"
	assert.Equal(t, ":memory:", cfg.SQLitePath("/project"))
}

func TestConfigDir(t *testing.T) {
	result := ConfigDir("/home/user/project")
	assert.Equal(t, "/home/user/project/.gedcheck", result)
}

func TestConfigFilePath(t *testing.T) {
	result := ConfigFilePath("/home/user/project")
	assert.Equal(t, "/home/user/project/.gedcheck/config.yaml", result)
}
