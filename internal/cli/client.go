package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cultivar-dev/cultivar/internal/api"
	"github.com/cultivar-dev/cultivar/internal/api/cache"
	"github.com/cultivar-dev/cultivar/internal/config"
)

// newCacheStore opens the response cache described by the global config.
func newCacheStore() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()
	dir, err := config.GetCacheDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	store, err := cache.NewFileStore(dir, cfg.Cache.Enabled, cfg.Cache.TTL())
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

// newAPIClient builds the backend client from the global config.
func newAPIClient() (*api.Client, error) {
	return buildAPIClient(logger)
}

// newInteractiveAPIClient builds the client behind an interactive screen. It
// logs through tuiLogger so requests never write over the screen.
func newInteractiveAPIClient() (*api.Client, error) {
	return buildAPIClient(*tuiLogger())
}

// buildAPIClient builds the backend client logging to l. A cache that cannot
// be opened is logged and skipped.
func buildAPIClient(l zerolog.Logger) (*api.Client, error) {
	cfg := config.GetGlobalConfig()

	opts := []api.Option{api.WithLogger(l)}
	if cfg.Cache.Enabled {
		store, err := newCacheStore()
		if err != nil {
			l.Warn().Err(err).Msg("continuing without response cache")
		} else {
			opts = append(opts, api.WithCache(store))
		}
	}

	return api.New(cfg.API, opts...)
}
