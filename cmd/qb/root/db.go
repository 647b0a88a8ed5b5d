package root

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"questboard/internal/config"
	"questboard/internal/engine"
	"questboard/internal/storage"
)

// loadConfig reads the config file and environment, then applies --db and --store.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(o.backend))
	}
	if o.dbPath != "" {
		cfg.Storage.Path = o.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	return storage.New(ctx, storage.Options{
		Backend: cfg.Storage.Backend,
		Path:    cfg.Storage.Path,
	})
}

// cliLogger keeps one-shot commands quiet unless debug logging is on.
func cliLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	lc := cfg.Log
	if lvl, _ := config.ParseLevel(lc.Level); lvl < slog.LevelWarn && lvl != slog.LevelDebug {
		lc.Level = "warn"
	}
	return lc.NewLogger(cmd.ErrOrStderr())
}

func (o *globalOptions) openService(ctx context.Context, cmd *cobra.Command) (*engine.Service, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}
	return engine.NewService(store, engine.WithLogger(cliLogger(cmd, cfg))), cleanup, nil
}
