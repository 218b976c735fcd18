package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/entity"
	"github.com/cultivar-dev/cultivar/internal/tui"
)

func newUsersCmd() *cobra.Command {
	return newResourceCmd(resource[entity.User]{
		kind:        entity.KindUser,
		description: "Accounts with access to the dashboard.",
		columns:     tui.UserColumns,
		list: func(ctx context.Context, c *api.Client, search string, opts ...api.ListOption) ([]entity.User, error) {
			return c.ListUsers(ctx, search, opts...)
		},
		remove: func(ctx context.Context, c *api.Client, id string) error {
			return c.DeleteUser(ctx, id)
		},
		rowID:    func(u entity.User) string { return u.ID },
		describe: func(u entity.User) string { return u.DisplayName },
	}, newUserCreateCmd())
}

// newUserCreateCmd creates "users create".
func newUserCreateCmd() *cobra.Command {
	var (
		in     entity.NewUser
		output string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a user",
		Example: `  cultivar users create --name "Ada Grower" --email ada@example.com --password s3cretpass`,
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
			created, err := client.CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			if created.DisplayName == "" {
				created.DisplayName = in.DisplayName
			}
			return printCreated(cmd, format, entity.KindUser, created.DisplayName, created)
		},
	}

	cmd.Flags().StringVar(&in.DisplayName, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
