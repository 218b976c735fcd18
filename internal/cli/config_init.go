package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cultivar-dev/cultivar/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// When a project directory is in effect (without --global), it creates a
// project-local .cultivar/config.yaml. Otherwise, it creates the global
// ~/.cultivar/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

When --project-dir or CULTIVAR_PROJECT_DIR names a project, creates
project-local configuration at $PROJECT/.cultivar/config.yaml. Use --global to
force global configuration initialization.`,
		Example: `  # Create global configuration
  cultivar config init

  # Create project-local configuration
  cultivar config init --project-dir .

  # Create configuration, overwriting existing
  cultivar config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectFlag, _ := cmd.Flags().GetString("project-dir")
			if !global {
				if projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, ""); projectDir != "" {
					return initConfigAt(cmd, filepath.Join(projectDir, "config.yaml"), force)
				}
			}

			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			return initConfigAt(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even with a project directory")

	return cmd
}

// initConfigAt writes the default configuration to path.
func initConfigAt(cmd *cobra.Command, path string, force bool) error {
	// Check if config already exists and force isn't set
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Default().SaveTo(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}

// NewConfigShowCmd creates the config show command, printing the effective
// configuration after file, project overlay, environment and flags.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := outputYAML
			if output != "" {
				format = output
			}
			if format != outputYAML && format != outputJSON {
				return fmt.Errorf("unsupported output format: %s (supported: json, yaml)", format)
			}

			cfg := *config.GetGlobalConfig()
			if cfg.API.AuthCookie != "" {
				cfg.API.AuthCookie = redacted
			}
			return writeStructured(cmd.OutOrStdout(), format, cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: yaml or json")
	return cmd
}

// redacted replaces secrets in printed configuration.
const redacted = "<redacted>"
