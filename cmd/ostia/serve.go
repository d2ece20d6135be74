package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/ostia/internal/cli"
	httpAdapter "github.com/aretw0/ostia/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves the model store as a JSON API: learn, translate, apply, graph and model management.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		return withStore(func(store cli.Store) error {
			opts := []httpAdapter.HandlerOption{httpAdapter.WithRequestValidation()}
			var reg *prometheus.Registry
			if cfg.Server.Metrics {
				reg = prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				opts = append(opts, httpAdapter.WithMetrics(reg))
			}
			var registerer prometheus.Registerer
			if reg != nil {
				registerer = reg
			}
			svc := cli.NewService(store, logger, debugEnabled(), registerer)
			handler, err := httpAdapter.NewHandler(svc, opts...)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("Starting Ostia Server", "address", srv.Addr, "store", cfg.Store.Backend, "metrics", cfg.Server.Metrics)
				serverErrors <- srv.ListenAndServe()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
				logger.Info("Start shutdown")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("Graceful shutdown did not complete", "error", err)
					return srv.Close()
				}
				logger.Info("Ostia Server stopped gracefully")
				return nil
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
}
