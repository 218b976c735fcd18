package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/entity"
	"github.com/cultivar-dev/cultivar/internal/tui"
)

func newRolesCmd() *cobra.Command {
	return newResourceCmd(resource[entity.Role]{
		kind:        entity.KindRole,
		description: "Permission groups assigned to users.",
		columns:     tui.RoleColumns,
		list: func(ctx context.Context, c *api.Client, search string, opts ...api.ListOption) ([]entity.Role, error) {
			return c.ListRoles(ctx, search, opts...)
		},
		remove: func(ctx context.Context, c *api.Client, id string) error {
			n, err := strconv.Atoi(id)
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: role ids are positive integers, got %q", entity.ErrInvalidID, id)
			}
			return c.DeleteRole(ctx, n)
		},
		rowID:    func(r entity.Role) string { return strconv.Itoa(r.ID) },
		describe: func(r entity.Role) string { return r.Name },
	}, newRoleCreateCmd())
}

// newRoleCreateCmd creates "roles create".
func newRoleCreateCmd() *cobra.Command {
	var (
		in     entity.NewRole
		output string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a role",
		Example: `  cultivar roles create --name grower`,
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
			created, err := client.CreateRole(cmd.Context(), in)
			if err != nil {
				return err
			}
			if created.Name == "" {
				created.Name = in.Name
			}
			return printCreated(cmd, format, entity.KindRole, created.Name, created)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "role name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
