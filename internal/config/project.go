package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cultivar-dev/cultivar/internal/logging"
)

// ResolveProjectDir determines the project-local .cultivar directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. CULTIVAR_PROJECT_DIR env var
//  3. the nearest .cultivar directory walking up from startDir
//
// Returns an absolute path, or an empty string if no project was found.
// Does NOT create the directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	dir := toAbsProjectDir(ctx, startDir)
	home, _ := GetConfigDir()
	for {
		// The global config directory is not a project overlay.
		if info, err := os.Stat(dir); err == nil && info.IsDir() && dir != home {
			return dir
		}
		parent := filepath.Dir(filepath.Dir(dir))
		if parent == filepath.Dir(dir) {
			return ""
		}
		dir = filepath.Join(parent, configDirName)
	}
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return New()
	}

	// Environment variables still win over the project overlay.
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// toAbsProjectDir converts dir to an absolute path and appends ".cultivar"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == configDirName {
		return abs
	}

	return filepath.Join(abs, configDirName)
}
