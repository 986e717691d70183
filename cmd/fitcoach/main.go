package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/fitcoach/config"
	"github.com/mohammad-safakhou/fitcoach/internal/app"
	"github.com/mohammad-safakhou/fitcoach/internal/playback"
	"github.com/mohammad-safakhou/fitcoach/provider"
	"github.com/mohammad-safakhou/fitcoach/repository"
)

var version = "dev"

func main() {
	var cfgPath string
	var root = &cobra.Command{
		Use:           "fitcoach",
		Short:         "AI fitness and diet planner",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config/config.yaml)")

	root.AddCommand(
		serveCMD(&cfgPath),
		planCMD(&cfgPath),
		speakCMD(&cfgPath),
		imageCMD(&cfgPath),
		stateCMD(&cfgPath),
		migrateCMD(&cfgPath),
		tokenCMD(&cfgPath),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// deps bundles what every command needs. Store and provider are opened
// only when asked for.
type deps struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    repository.Store
	provider provider.Provider
}

func bootstrap(ctx context.Context, cfgPath string, withStore, withProvider bool) (*deps, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	rt := &deps{cfg: cfg, logger: config.NewLogger(cfg.General)}
	slog.SetDefault(rt.logger)

	if withProvider {
		rt.provider, err = provider.NewProvider(cfg.Provider, rt.logger)
		if err != nil {
			return nil, err
		}
	}
	if withStore {
		rt.store, err = repository.NewStore(ctx, cfg.Storage, rt.logger)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Type, err)
		}
	}
	return rt, nil
}

// service wires the app service; callers must have opened store and provider.
func (rt *deps) service() *app.Service {
	coord := playback.NewCoordinator(rt.provider, playback.WithLogger(rt.logger))
	return app.NewService(rt.store, rt.provider, coord, rt.logger)
}

func (rt *deps) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warn("closing store", "error", err)
		}
	}
}
