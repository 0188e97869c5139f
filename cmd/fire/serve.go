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
	"github.com/rpgo/fire-calculator/internal/api"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		flags   engineFlags
		addr    string
		origins []string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			w, err := flags.build(cmd.ErrOrStderr(), reg)
			if err != nil {
				return err
			}
			defer w.close()

			logger := w.logger
			handler := api.NewHandler(w.engine, logger)
			handler.Timeout = timeout

			server := &http.Server{
				Addr:         addr,
				Handler:      api.NewRouter(handler, origins, w.metrics.Handler()),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: timeout + 15*time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Infof("server starting on %s", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err, ok := <-errCh:
				if ok {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-quit:
			}

			logger.Infof("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "per-request projection timeout")
	return cmd
}
