package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CorruCalc/internal/project"
	"github.com/piwi3910/CorruCalc/internal/server"
)

func newServeCmd(st *cliState) *cobra.Command {
	var envFile, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: fmt.Sprintf(`Serve the calculator over HTTP. Settings come from the environment
(%s, %s, %s), optionally loaded from an env file.`, server.EnvAddr, server.EnvRate, server.EnvBurst),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(envFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			presets, err := project.LoadCustomPresets(project.DefaultPresetsPath())
			if err != nil {
				st.logger.Warn("failed to load custom presets", "err", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st.logger.Info("starting server", "addr", cfg.Addr, "rate", cfg.Rate, "burst", cfg.Burst)
			return server.New(cfg, presets, st.logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&envFile, "env", ".env", "env file to load before reading the environment")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides "+server.EnvAddr)
	return cmd
}
