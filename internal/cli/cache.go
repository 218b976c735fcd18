package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cultivar-dev/cultivar/internal/api/cache"
	"github.com/cultivar-dev/cultivar/internal/config"
)

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(newCacheInfoCmd(), newCacheClearCmd())
	return cmd
}

// openCacheForMaintenance opens the cache directory even when caching is
// disabled in the config, so stale entries can still be inspected and removed.
func openCacheForMaintenance() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()
	dir, err := config.GetCacheDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	return cache.NewFileStore(dir, true, cfg.Cache.TTL())
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location, TTL and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheForMaintenance()
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return err
			}

			enabled := "enabled"
			if !config.GetGlobalConfig().Cache.Enabled {
				enabled = "disabled"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Directory: %s\n", store.Directory())
			fmt.Fprintf(out, "Status:    %s\n", enabled)
			fmt.Fprintf(out, "TTL:       %s\n", cache.FormatDuration(store.TTL()))
			fmt.Fprintf(out, "Entries:   %d (%d expired)\n", stats.Entries, stats.Expired)
			fmt.Fprintf(out, "Size:      %d bytes\n", stats.Bytes)
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCacheForMaintenance()
			if err != nil {
				return err
			}

			var removed int
			if expiredOnly {
				removed, err = store.CleanupExpired()
			} else {
				removed, err = store.Clear()
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			logger.Debug().Ctx(cmd.Context()).Int("removed", removed).Bool("expired_only", expiredOnly).Msg("cache cleared")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached response(s)\n", removed)
			return err
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove expired entries")
	return cmd
}
