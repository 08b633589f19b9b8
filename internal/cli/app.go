package cli

import (
	"github.com/rileyhilliard/rtad/internal/config"
	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/logger"
	"github.com/rileyhilliard/rtad/internal/rtad"
)

// app carries what every command builds from the config: the validated
// config itself, the sort state store and a logger.
type app struct {
	cfg   *config.Config
	store *rtad.StateStore
	log   logger.Logger
}

// loadApp finds, loads and validates the config, applies flag overrides
// (flags may be nil) and opens the state store.
func loadApp(flags *FeedFlags) (*app, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if flags != nil {
		if err := flags.Apply(cfg); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:   cfg,
		store: store,
		log:   logger.NewEnvLogger("[rtad]"),
	}, nil
}

// openStore returns the store at state.path, or the XDG default.
func openStore(cfg *config.Config) (*rtad.StateStore, error) {
	path := cfg.State.Path
	if path == "" {
		p, err := rtad.DefaultStatePath()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrState,
				"Cannot determine where to keep sort state",
				"Set state.path in your .rtad.yaml")
		}
		path = p
	}
	return rtad.NewStateStore(path), nil
}

// kinds returns the configured tables in display order.
func (a *app) kinds() ([]rtad.TableKind, error) {
	kinds := make([]rtad.TableKind, 0, len(a.cfg.Tables))
	for _, name := range a.cfg.Tables {
		k, err := rtad.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// newFeeds creates one feed per kind sharing a timestamp cache.
func (a *app) newFeeds(kinds []rtad.TableKind) []*rtad.Feed {
	dates := rtad.NewDateCache()
	feeds := make([]*rtad.Feed, len(kinds))
	for i, k := range kinds {
		feeds[i] = rtad.NewFeed(k, rtad.FeedOptions{
			MaxRows: a.cfg.Display.MaxRows,
			Locale:  a.cfg.Display.Locale,
			Store:   a.store,
			Dates:   dates,
			Logger:  a.log,
		})
	}
	return feeds
}

// newClient creates the backend client from the server section.
func (a *app) newClient() *rtad.Client {
	return rtad.NewClient(a.cfg.Server.BaseURL, a.cfg.Server.Timeout,
		rtad.WithHeaders(a.cfg.Server.Headers),
		rtad.WithUserAgent("rtad/"+version),
	)
}
