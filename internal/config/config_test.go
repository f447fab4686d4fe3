package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitglob "github.com/Sriram-PR/go-gitglob"
)

// isolateEnv points the default config path into an empty directory and
// clears the override variables this package reads.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, v := range []string{"CASE", "MAX_STEPS", "WORKERS", "IGNORE_FILE", "COLOR", "DEBUG"} {
		t.Setenv(envPrefix+v, "")
		require.NoError(t, os.Unsetenv(envPrefix+v))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sensitive", cfg.Case)
	assert.Equal(t, 0, cfg.MaxSteps)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, ".gitignore", cfg.IgnoreFile)
	assert.Equal(t, "auto", cfg.Color)
	assert.False(t, cfg.Debug)
}

func TestLoad_File(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "case: fold\nworkers: 4\nignore_file: .myignore\nmax_steps: -1\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fold", cfg.Case)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ".myignore", cfg.IgnoreFile)
	assert.Equal(t, -1, cfg.MaxSteps)
	assert.Equal(t, "auto", cfg.Color) // untouched field keeps its default
}

func TestLoad_DefaultLocation(t *testing.T) {
	isolateEnv(t)
	xdg := os.Getenv("XDG_CONFIG_HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "gitglob"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "gitglob", "config.yaml"),
		[]byte("workers: 7\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "workers: 4\ncolor: never\n")
	t.Setenv("GITGLOB_WORKERS", "8")
	t.Setenv("GITGLOB_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "never", cfg.Color)
	assert.True(t, cfg.Debug)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	isolateEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read")
}

func TestLoad_BadYAML(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "workers: [not an int\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoad_Validation(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad case", "case: insensitive\n", "invalid case"},
		{"bad color", "color: rainbow\n", "invalid color"},
		{"bad workers", "workers: -2\n", "workers must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatcherOptions(t *testing.T) {
	fold := Config{Case: "fold", MaxSteps: -1}
	assert.Equal(t, gitglob.MatcherOptions{Case: gitglob.CaseFold, MaxMatchSteps: -1},
		fold.MatcherOptions())

	sensitive := Config{Case: "sensitive", MaxSteps: 500}
	assert.Equal(t, gitglob.MatcherOptions{Case: gitglob.CaseSensitive, MaxMatchSteps: 500},
		sensitive.MatcherOptions())
}

func TestDefaultPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "gitglob", "config.yaml"), DefaultPath())
}
