package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cultivar-dev/cultivar/internal/tui"
)

// overviewBoxWidth is the summary box width when stdout is not a terminal.
const overviewBoxWidth = 80

// NewOverviewCmd creates the overview command: record counts per collection
// and plants per stage.
func NewOverviewCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show record counts per collection",
		Example: `  cultivar overview
  cultivar overview --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			ov, err := client.Overview(ctx)
			if err != nil {
				return fmt.Errorf("loading overview: %w", err)
			}
			logger.Debug().Ctx(ctx).Int("plants", ov.Plants).Msg("overview loaded")

			if format != outputTable {
				return writeStructured(cmd.OutOrStdout(), format, ov)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderOverview(ov, overviewBoxWidth))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	return cmd
}

// NewHealthCmd creates the health command, which checks that the backend answers.
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err = client.HealthCheck(cmd.Context()); err != nil {
				return fmt.Errorf("backend %s is not healthy: %w", client.BaseURL(), err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Backend %s is healthy\n", client.BaseURL())
			return err
		},
	}
}
