package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/entity"
	"github.com/cultivar-dev/cultivar/internal/pagination"
	"github.com/cultivar-dev/cultivar/internal/tui"
	"github.com/cultivar-dev/cultivar/internal/tui/datatable"
)

// resource binds one backend collection to its columns and client calls.
type resource[T any] struct {
	kind        entity.Kind
	description string
	columns     func() []datatable.Column[T]
	list        func(ctx context.Context, c *api.Client, search string, opts ...api.ListOption) ([]T, error)
	remove      func(ctx context.Context, c *api.Client, id string) error
	rowID       func(T) string
	describe    func(T) string
}

// listFlags are the flags of every "<entity> list" command.
type listFlags struct {
	pagination.Params

	Search string
	Output string
	NoTUI  bool
}

// newResourceCmd creates the command group of r with list and delete
// subcommands plus any extra subcommands.
func newResourceCmd[T any](r resource[T], extra ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.kind.Path(),
		Short: fmt.Sprintf("Manage %s", r.kind.Path()),
	}
	cmd.AddCommand(newListCmd(r), newDeleteCmd(r))
	cmd.AddCommand(extra...)
	return cmd
}

// newListCmd creates "<entity> list".
func newListCmd[T any](r resource[T]) *cobra.Command {
	flags := listFlags{Params: *pagination.NewParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", r.kind.Path()),
		Long: fmt.Sprintf(`List %s.

On a terminal the list opens as an interactive table with fuzzy search,
sorting, column visibility and paging. Otherwise, or with --no-tui, the same
filter, sort and page are applied once and printed with a footer.`, r.kind.Path()),
		Example: fmt.Sprintf(`  # Browse interactively
  cultivar %[1]s list

  # Fuzzy filter and print page 2
  cultivar %[1]s list --query blue --page 2 --no-tui

  # Export as YAML
  cultivar %[1]s list --output yaml`, r.kind.Path()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, r, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Query, "query", "q", "", "fuzzy filter applied to every visible column")
	cmd.Flags().IntVarP(&flags.Page, "page", "p", pagination.DefaultPage, "1-based page number")
	cmd.Flags().StringVar(&flags.Sort, "sort", "", "sort by column: field or field:asc|desc")
	cmd.Flags().StringVar(&flags.Search, "search", "", "backend search term sent as ?query=")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&flags.NoTUI, "no-tui", false, "print the table instead of opening the interactive view")

	return cmd
}

// runList fetches the collection and renders it in the requested mode.
func runList[T any](cmd *cobra.Command, r resource[T], flags listFlags) error {
	ctx := cmd.Context()

	format, err := resolveOutputFormat(flags.Output)
	if err != nil {
		return err
	}
	if err = flags.Validate(); err != nil {
		return err
	}
	columns := r.columns()
	initialSort, err := parseSortFlag(columns, flags.Sort)
	if err != nil {
		return err
	}

	interactive := format == outputTable && !flags.NoTUI && isTerminal(os.Stdout) && isTerminal(os.Stdin)
	newClient := newAPIClient
	if interactive {
		newClient = newInteractiveAPIClient
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	fetch := func(ctx context.Context) ([]T, error) {
		return r.list(ctx, client, flags.Search)
	}

	if interactive {
		logger.Debug().Ctx(ctx).Str("entity", string(r.kind)).Msg("starting interactive list")
		return tui.RunList(ctx, tui.ScreenConfig[T]{
			Kind:        r.kind,
			Description: r.description,
			Columns:     columns,
			Fetch:       fetch,
			Refresh: func(ctx context.Context) ([]T, error) {
				return r.list(ctx, client, flags.Search, api.Fresh())
			},
			Delete:       func(ctx context.Context, row T) error { return r.remove(ctx, client, r.rowID(row)) },
			Describe:     r.describe,
			InitialQuery: flags.Query,
			InitialPage:  flags.Page,
			InitialSort:  initialSort,
			Logger:       tuiLogger(),
		}, tui.RunOptions{AltScreen: true})
	}

	rows, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("listing %s: %w", r.kind.Path(), err)
	}
	result := applyListFlags(rows, columns, flags.Params, initialSort)

	if format == outputTable {
		return renderPlainTable(cmd.OutOrStdout(), columns, result)
	}
	page := make([]T, len(result.Rows))
	for i, row := range result.Rows {
		page[i] = row.Original
	}
	return writeStructured(cmd.OutOrStdout(), format, page)
}

// applyListFlags runs the table pipeline once: filter, sort, then the page
// named by params, clamped to the available pages.
func applyListFlags[T any](
	rows []T,
	columns []datatable.Column[T],
	params pagination.Params,
	sort *datatable.SortSpec,
) datatable.Result[T] {
	state := datatable.NewState()
	state.SetGlobalFilter(params.Query)
	if sort != nil {
		state.SetSort(sort.ColumnID, sort.Desc)
	}
	state.SetPageIndex(params.PageIndex(), pagination.TotalPages(datatable.MatchCount(rows, columns, state), state.PageSize))
	return datatable.Apply(rows, columns, state)
}

// parseSortFlag parses --sort against the sortable columns.
func parseSortFlag[T any](columns []datatable.Column[T], sortFlag string) (*datatable.SortSpec, error) {
	field, order, err := pagination.ParseSort(sortFlag)
	if err != nil {
		return nil, err
	}
	if field == "" {
		return nil, nil //nolint:nilnil // No sort requested.
	}

	var valid []string
	for _, col := range columns {
		if !col.Sortable {
			continue
		}
		if strings.EqualFold(col.ID, field) {
			return &datatable.SortSpec{ColumnID: col.ID, Desc: order == pagination.SortOrderDesc}, nil
		}
		valid = append(valid, col.ID)
	}
	return nil, fmt.Errorf("%w: %q (valid: %s)", pagination.ErrInvalidSortField, field, strings.Join(valid, ", "))
}

// newDeleteCmd creates "<entity> delete <id>".
func newDeleteCmd[T any](r resource[T]) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", r.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if !yes {
				res := ConfirmDelete(cmd.OutOrStdout(), cmd.InOrStdin(), r.kind, id)
				if res.NonInteractive {
					return errors.New("refusing to delete without confirmation, pass --yes")
				}
				if !res.Accepted {
					cmd.Println("Aborted.")
					return nil
				}
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err = r.remove(cmd.Context(), client, id); err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("%s %q not found: %w", r.kind, id, err)
				}
				return fmt.Errorf("deleting %s %q: %w", r.kind, id, err)
			}

			logger.Info().Ctx(cmd.Context()).Str("entity", string(r.kind)).Str("id", id).Msg("deleted")
			cmd.Printf("Deleted %s %s\n", r.kind, id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// printCreated reports a created record in the requested format.
func printCreated(cmd *cobra.Command, format string, kind entity.Kind, name string, v any) error {
	if format == outputTable {
		cmd.Printf("Created %s %s\n", kind, name)
		return nil
	}
	return writeStructured(cmd.OutOrStdout(), format, v)
}
