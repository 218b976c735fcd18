package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivar-dev/cultivar/internal/config"
)

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")
	assert.Equal(t, filepath.Join(flagDir, ".cultivar"), got)
}

func TestResolveProjectDir_Env(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), ".cultivar")
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")
	assert.Equal(t, envDir, got, "no double .cultivar suffix")
}

func TestResolveProjectDir_WalksUp(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvHome, filepath.Join(t.TempDir(), "home"))

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".cultivar"), 0700))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))

	got := config.ResolveProjectDir(context.Background(), "", nested)
	assert.Equal(t, filepath.Join(root, ".cultivar"), got)
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", ""))
}

func TestNewWithProjectDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogLevel, "")
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("api:\n  base_url: http://global.local/api\n  timeout_seconds: 3\n"), 0600))

	projectDir := filepath.Join(t.TempDir(), ".cultivar")
	require.NoError(t, os.Mkdir(projectDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("logging:\n  level: debug\n"), 0600))

	cfg := config.NewWithProjectDir(context.Background(), projectDir)
	assert.Equal(t, "http://global.local/api", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)

	cfg = config.NewWithProjectDir(context.Background(), "")
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
}
