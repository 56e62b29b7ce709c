package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juntos-app/juntos/internal/model"
)

var ana = model.Member{ID: "ana", Name: "Ana"}

func TestRoundTrip(t *testing.T) {
	cfg := Default("c1", ana)
	cfg.Couple.MemberB = model.Member{ID: "luis", Name: "Luis"}
	cfg.Storage = StorageConfig{Backend: BackendSQLite, Path: "data/juntos.db"}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Couple, got.Couple)
	assert.Equal(t, cfg.Currency, got.Currency)
	assert.Equal(t, cfg.Storage, got.Storage)
	assert.Equal(t, cfg.Git, got.Git)
	assert.Equal(t, cfg.Log, got.Log)
}

func TestDefaults(t *testing.T) {
	cfg := Default("c1", ana)

	assert.Equal(t, "c1", cfg.Couple.ID)
	assert.Equal(t, ana, cfg.Couple.MemberA)
	assert.True(t, cfg.Couple.MemberB.IsZero())
	assert.Equal(t, "$", cfg.Currency.Symbol)
	assert.Equal(t, BackendCSV, cfg.Storage.Backend)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
	assert.ErrorIs(t, cfg.RequireLinked(), ErrNotLinked)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("c1", ana)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "member_a:")
	assert.Contains(t, contents, "name: Ana")
	assert.Contains(t, contents, "backend: csv")
	assert.Contains(t, contents, "auto_commit: true")
	assert.NotContains(t, contents, "member_b:")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing couple id", func(c *Config) { c.Couple.ID = "" }, "couple.id"},
		{"missing member a", func(c *Config) { c.Couple.MemberA = model.Member{} }, "member_a"},
		{"same members", func(c *Config) { c.Couple.MemberB = ana }, "distinct"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, "postgres"},
		{"sqlite without path", func(c *Config) { c.Storage.Backend = BackendSQLite }, "storage.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("c1", ana)
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "JUNTOS_STORAGE_BACKEND=SQLite\nJUNTOS_STORAGE_PATH=data/test.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	// godotenv sets process variables; make sure they are cleared afterwards.
	t.Setenv("JUNTOS_STORAGE_BACKEND", "")
	t.Setenv("JUNTOS_STORAGE_PATH", "")
	os.Unsetenv("JUNTOS_STORAGE_BACKEND")
	os.Unsetenv("JUNTOS_STORAGE_PATH")
	t.Setenv("JUNTOS_LOG_LEVEL", "debug")

	cfg := Default("c1", ana)
	require.NoError(t, ApplyEnv(dir, cfg))

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "data/test.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnv_NoFile(t *testing.T) {
	t.Setenv("JUNTOS_LOG_LEVEL", "")
	t.Setenv("JUNTOS_STORAGE_BACKEND", "")
	t.Setenv("JUNTOS_STORAGE_PATH", "")

	cfg := Default("c1", ana)
	require.NoError(t, ApplyEnv(t.TempDir(), cfg))
	assert.Equal(t, BackendCSV, cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}
