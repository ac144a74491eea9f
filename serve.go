package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sales-pulse/app"
	"sales-pulse/config"
	"sales-pulse/logging"
)

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// In production, variables should be set directly
			loaded, err := config.LoadEnv(envFile)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := logging.New(cfg.LogLevel)
			if loaded > 0 {
				logger.Infof("Loaded environment variables from %s (overriding system variables)", envFile)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := app.Initialize(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
			srv := &http.Server{
				Addr:              cfg.Address(),
				Handler:           application.Handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Infof("🚀 Server starting on %s", srv.Addr)
				logger.Infof("Order form endpoint: GET %s/admin/orders/{id}/form?format=pdf", cfg.PublicURL())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("🛑 Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file loaded outside production")
	return cmd
}
