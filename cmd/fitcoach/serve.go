package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/fitcoach/internal/server"
	"github.com/mohammad-safakhou/fitcoach/internal/telemetry"
)

func serveCMD(cfgPath *string) *cobra.Command {
	var serveAddr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := bootstrap(ctx, *cfgPath, true, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			tel, err := telemetry.Setup(ctx, rt.cfg.Telemetry, version)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tel.Shutdown(shutdownCtx); err != nil {
					rt.logger.Warn("telemetry shutdown", "error", err)
				}
			}()

			addr := serveAddr
			if addr == "" {
				addr = rt.cfg.Server.Address
			}
			e := server.New(rt.cfg.Server, rt.service(), tel.Registry, rt.logger)
			return server.Run(ctx, e, addr, rt.logger)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.address)")

	return serve
}
