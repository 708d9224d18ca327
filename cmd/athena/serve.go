package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/MIBbrandon/Athena"
	"github.com/MIBbrandon/Athena/internal/cli"
	httpAdapter "github.com/MIBbrandon/Athena/pkg/adapters/http"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves sessions over a JSON HTTP API with a Server-Sent Events stream per session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.HTTP.Addr = ":" + port
		}
		if cmd.Flags().Changed("metrics") {
			cfg.Metrics.Enabled, _ = cmd.Flags().GetBool("metrics")
		}

		var hooks []domain.LifecycleHooks
		var serverOpts []httpAdapter.Option
		if cfg.Metrics.Enabled {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics, err := observability.NewMetrics(reg)
			if err != nil {
				return err
			}
			hooks = append(hooks, metrics.Hooks())
			serverOpts = append(serverOpts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		}

		player, backend, err := cli.NewPlayer(cfg, logger, cli.PlayerOptions{Hooks: hooks})
		if err != nil {
			return err
		}
		defer backend.Close()

		serverOpts = append(serverOpts,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(strings.TrimSpace(athena.Version)),
		)
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		srv := &http.Server{
			Addr:    cfg.HTTP.Addr,
			Handler: httpAdapter.NewServer(player, serverOpts...).Handler(),
			// Event streams end when the signal context is cancelled.
			BaseContext: func(net.Listener) context.Context { return sigCtx },
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting athena server", "addr", srv.Addr, "store", cfg.Store.Backend, "metrics", cfg.Metrics.Enabled)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			logger.Info("shutting down", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", cfg.HTTP.ShutdownTimeout, "err", err)
				return srv.Close()
			}
			logger.Info("athena server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides http.addr)")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics at /metrics")
}
