package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnarthur1/slngen/internal/logging"
)

func TestGetConfigDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(EnvHome, home)

		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, home, dir)
	})

	t.Run("user home", func(t *testing.T) {
		t.Setenv(EnvHome, "")
		userHome := t.TempDir()
		t.Setenv("HOME", userHome)
		t.Setenv("USERPROFILE", userHome)

		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userHome, ".slngen"), dir)
	})
}

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)
}

func TestEnsureConfigDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", ".slngen")
	t.Setenv(EnvHome, home)

	require.NoError(t, EnsureConfigDir())

	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.EnsureLogDir(), "no file configured")

	logDir := filepath.Join(t.TempDir(), "logs")
	cfg.Logging.File = filepath.Join(logDir, "slngen.log")
	require.NoError(t, cfg.EnsureLogDir())
	assert.DirExists(t, logDir)
}

func TestToLoggingConfig(t *testing.T) {
	tests := []struct {
		name string
		in   LoggingConfig
		want logging.Config
	}{
		{
			name: "stderr",
			in:   LoggingConfig{Level: "info", Format: "json"},
			want: logging.Config{Level: "info", Format: "json", Output: logging.OutputStderr},
		},
		{
			name: "file",
			in:   LoggingConfig{Level: "debug", Format: "console", File: "/tmp/slngen.log"},
			want: logging.Config{
				Level:  "debug",
				Format: "console",
				Output: logging.OutputFile,
				File:   "/tmp/slngen.log",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ToLoggingConfig())
		})
	}
}

func TestWithDebug(t *testing.T) {
	lc := LoggingConfig{Level: "error", Format: "json"}

	debug := lc.WithDebug()
	assert.Equal(t, "debug", debug.Level)
	assert.Equal(t, "json", debug.Format)
	assert.Equal(t, "error", lc.Level, "original is unchanged")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := New()
	cfg.Locator.Runtime = RuntimeFramework
	cfg.Locator.VSWherePath = "/opt/vswhere"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path, func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
