package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cultivar-dev/cultivar/internal/config"
	"github.com/cultivar-dev/cultivar/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the cultivar CLI.
// It wires up configuration, logging, tracing, and the entity subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "cultivar",
		Short:   "Plant cultivation admin from the terminal",
		Long:    "cultivar: browse and manage users, roles, genetics and plants of a cultivation backend",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $CULTIVAR_CONFIG or ~/.cultivar/config.yaml)")
	cmd.PersistentFlags().String("api-url", "", "backend API base URL (overrides config and env)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the list response cache")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding a .cultivar overlay")

	cmd.AddCommand(
		newUsersCmd(), newRolesCmd(), newGeneticsCmd(), newPlantsCmd(),
		NewOverviewCmd(), NewHealthCmd(), newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Browse plants interactively
  cultivar plants list

  # Print the second page of users sorted by email, newest first
  cultivar users list --page 2 --sort email:desc --no-tui

  # Export genetics as JSON
  cultivar genetics list --output json

  # Create a genetic and a plant
  cultivar genetics create --name "Blue Dream" --flower-days 63
  cultivar plants create --genetic-id 3f0e... --name "$(cultivar plants name 3f0e...)"

  # Counts per collection
  cultivar overview

  # Initialize configuration
  cultivar config init`

// loadConfig resolves the configuration for this invocation and applies the
// persistent flag overrides. Flags win over the environment, which wins over
// the project overlay and the config file.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	var cfg *config.Config
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		loaded.ApplyEnv(os.LookupEnv)
		cfg = loaded
	} else {
		projectFlag, _ := flags.GetString("project-dir")
		cwd, _ := os.Getwd()
		cfg = config.NewWithProjectDir(ctx, config.ResolveProjectDir(ctx, projectFlag, cwd))
	}

	if apiURL, _ := flags.GetString("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
