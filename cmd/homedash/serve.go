package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/txn2/homedash/internal/server"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the homedash HTTP server",
		Example: `
  # In-memory stores, anonymous access, :8080
  homedash serve

  # Postgres-backed with a config file
  homedash serve --config /etc/homedash/config.yaml --address :9000
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("address"); addr != "" {
				cfg.Server.Address = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			srv, err := server.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := srv.Close(); err != nil {
					slog.Error("closing server", "error", err)
				}
			}()

			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().String("address", "", "listen address (overrides server.address)")
	return cmd
}
