package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/api"
	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/app/telemetry"
)

// ServeCmd runs the HTTP gateway and the Prometheus endpoint until interrupted.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withApp(cmd, func(nc *nodeContext, application *app.App) error {
				apiConfig, err := nc.Config.APIServerConfig()
				if err != nil {
					return err
				}

				provider, err := telemetry.NewProvider(nc.Config.TelemetryProviderConfig())
				if err != nil {
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), apiConfig.ShutdownTimeout)
					defer cancel()
					if err := provider.Shutdown(shutdownCtx); err != nil {
						nc.Logger.Error("telemetry shutdown", "error", err)
					}
				}()
				application.SetTelemetry(provider)

				if nc.Config.Metrics.Enabled {
					metrics := StartPrometheusServer(nc.Config.Metrics.Address, nc.Logger)
					defer func() {
						shutdownCtx, cancel := context.WithTimeout(context.Background(), apiConfig.ShutdownTimeout)
						defer cancel()
						_ = metrics.Shutdown(shutdownCtx)
					}()
				}

				return api.NewServer(application, apiConfig, nc.Logger).Start(ctx)
			})
		},
	}
}

// StartPrometheusServer serves /metrics on address in a background goroutine
// and returns the server so the caller can shut it down.
func StartPrometheusServer(address string, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", "address", address)
		// Errors after startup (like port in use) are logged but not fatal
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("prometheus server error", "error", err)
		}
	}()

	return server
}
