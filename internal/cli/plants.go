package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/entity"
	"github.com/cultivar-dev/cultivar/internal/tui"
)

func newPlantsCmd() *cobra.Command {
	return newResourceCmd(resource[entity.Plant]{
		kind:        entity.KindPlant,
		description: "Plants in cultivation and their stage.",
		columns:     tui.PlantColumns,
		list: func(ctx context.Context, c *api.Client, search string, opts ...api.ListOption) ([]entity.Plant, error) {
			return c.ListPlants(ctx, search, opts...)
		},
		remove: func(ctx context.Context, c *api.Client, id string) error {
			return c.DeletePlant(ctx, id)
		},
		rowID:    func(p entity.Plant) string { return p.ID },
		describe: func(p entity.Plant) string { return p.Name },
	}, newPlantCreateCmd(), newPlantNameCmd())
}

// newPlantCreateCmd creates "plants create". Without --name the backend's
// generated name for the genetic is used.
func newPlantCreateCmd() *cobra.Command {
	var (
		in     entity.NewPlant
		output string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a plant",
		Example: `  # Name the plant after the next free name of its genetic
  cultivar plants create --genetic-id 0b7e6f2c-6c41-4d8e-9d53-2f1f3c7e2a10`,
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

			in.GeneticID = strings.TrimSpace(in.GeneticID)
			if strings.TrimSpace(in.Name) == "" {
				if in.Name, err = client.GeneratePlantName(ctx, in.GeneticID); err != nil {
					return err
				}
				logger.Debug().Ctx(ctx).Str("name", in.Name).Msg("generated plant name")
			}

			created, err := client.CreatePlant(ctx, in)
			if err != nil {
				return err
			}
			if created.Name == "" {
				created.Name = in.Name
			}
			return printCreated(cmd, format, entity.KindPlant, created.Name, created)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "plant name (generated when empty)")
	cmd.Flags().StringVar(&in.GeneticID, "genetic-id", "", "id of the plant's genetic")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	_ = cmd.MarkFlagRequired("genetic-id")

	return cmd
}

// newPlantNameCmd creates "plants name <geneticID>".
func newPlantNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <geneticID>",
		Short: "Print the next generated plant name for a genetic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			name, err := client.GeneratePlantName(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}
}
