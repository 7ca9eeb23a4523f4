package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"districtportal/internal/adapters/dashboard"
	"districtportal/internal/core"
	"districtportal/internal/observability"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var tracePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := observability.Fanout{
				observability.NewPrometheusMetricsRecorder(reg),
				observability.NewExpvarMetricsRecorder("portal_operations"),
			}
			serviceOpts := []core.ServiceOption{core.WithMetricsRecorder(metrics)}
			if tracePath != "" {
				f, err := os.OpenFile(tracePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("opening trace file: %w", err)
				}
				defer f.Close()
				serviceOpts = append(serviceOpts, core.WithTracer(observability.NewJSONTracer(f)))
			}

			svc, cfg, logger, err := opts.openService(ctx, cmd.ErrOrStderr(), serviceOpts...)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			srv := &http.Server{
				Addr: cfg.Server.Addr,
				Handler: dashboard.NewRouter(svc, dashboard.RouterConfig{
					Logger:   logger,
					Registry: reg,
				}),
				ReadTimeout:  cfg.Server.ReadTimeout.Duration,
				WriteTimeout: cfg.Server.WriteTimeout.Duration,
				IdleTimeout:  cfg.Server.IdleTimeout.Duration,
			}
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			logger.Info("portal starting", slog.String("addr", ln.Addr().String()), slog.String("storage", cfg.Storage.Driver))
			return runServer(ctx, srv, ln, cfg.Server.ShutdownTimeout.Duration, logger)
		},
	}
	cmd.Flags().StringVar(&tracePath, "trace-file", "", "append JSON operation spans to this file")
	return cmd
}

// runServer serves on ln until ctx is done, then shuts down within timeout.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("portal stopped")
	return nil
}
