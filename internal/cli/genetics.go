package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/entity"
	"github.com/cultivar-dev/cultivar/internal/tui"
)

func newGeneticsCmd() *cobra.Command {
	return newResourceCmd(resource[entity.Genetic]{
		kind:        entity.KindGenetic,
		description: "Strains and their flowering time.",
		columns:     tui.GeneticColumns,
		list: func(ctx context.Context, c *api.Client, search string, opts ...api.ListOption) ([]entity.Genetic, error) {
			return c.ListGenetics(ctx, search, opts...)
		},
		remove: func(ctx context.Context, c *api.Client, id string) error {
			return c.DeleteGenetic(ctx, id)
		},
		rowID:    func(g entity.Genetic) string { return g.ID },
		describe: func(g entity.Genetic) string { return g.Name },
	}, newGeneticCreateCmd())
}

// newGeneticCreateCmd creates "genetics create".
func newGeneticCreateCmd() *cobra.Command {
	var (
		in     entity.NewGenetic
		output string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a genetic",
		Example: `  cultivar genetics create --name "Blue Dream" --flower-days 63`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			created, err := client.CreateGenetic(cmd.Context(), in)
			if err != nil {
				return err
			}
			if created.Name == "" {
				created.Name = in.Name
			}
			return printCreated(cmd, format, entity.KindGenetic, created.Name, created)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "genetic name")
	cmd.Flags().IntVar(&in.FlowerDays, "flower-days", 0, "days of flowering")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("flower-days")

	return cmd
}
