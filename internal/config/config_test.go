package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Dataset.Dir = "reference"
	cfg.Hierarchy.InferParents = false
	cfg.Log.Level = "debug"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "dataset", cfg.Dataset.Dir)
	assert.Equal(t, filepath.Join("data", "chartseed.db"), cfg.Database.Path)
	assert.True(t, cfg.Hierarchy.InferParents)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Hierarchy.InferParents)
	assert.Equal(t, "dataset", cfg.Dataset.Dir)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "dir: dataset")
	assert.Contains(t, contents, "infer_parents: true")
	assert.Contains(t, contents, "level: info")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/other.db")
	t.Setenv(EnvDataset, "ref")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvInferParents, "false")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "ref", cfg.Dataset.Dir)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.False(t, cfg.Hierarchy.InferParents)
}

func TestApplyEnv_BadBool(t *testing.T) {
	t.Setenv(EnvInferParents, "sometimes")
	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvInferParents)
}

func TestLoadProject_NoConfigUsesBuiltinDataset(t *testing.T) {
	cfg, err := LoadProject(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Dataset.Dir)
	assert.True(t, cfg.Hierarchy.InferParents)
}

func TestLoadProject_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, FileName), Default()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvLogLevel+"=debug\n"), 0o644))
	// godotenv never overrides variables that are already set; make sure the
	// variable is unset for this test and restored afterwards.
	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvLogLevel))

	cfg, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "dataset", cfg.Dataset.Dir)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Log.Level = tt.level
		got, err := cfg.SlogLevel()
		if tt.wantErr {
			assert.Error(t, err, "level %q", tt.level)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "level %q", tt.level)
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("proj", "data", "x.db"), Resolve("proj", filepath.Join("data", "x.db")))
	assert.Equal(t, "/abs/x.db", Resolve("proj", "/abs/x.db"))
	assert.Equal(t, "", Resolve("proj", ""))
}
