package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ssargent/bptreekv/pkg/metrics"
)

// serveMetricsCmd represents the serve-metrics command
var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Serve Prometheus metrics for the store over HTTP",
	Long: `Serve a /metrics endpoint on the given address, refreshing the
index gauges on every scrape. Runs until interrupted.

Example:
  bptreekv serve-metrics --addr=:9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		s, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		collector := s.Metrics()

		metricsHandler := promhttp.HandlerFor(collector.Registry, promhttp.HandlerOpts{})

		mux := http.NewServeMux()
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
			stat := s.Stats()
			collector.UpdateIndexStats(metrics.IndexStats{
				Keys:      stat.Keys,
				NodeCount: stat.NodeCount,
				Height:    stat.Height,
				ArenaUsed: stat.ArenaUsed,
				ArenaCap:  stat.ArenaCap,
				BloomBits: stat.BloomBits,
				BloomFill: stat.BloomFill,
			})
			metricsHandler.ServeHTTP(w, r)
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/metrics", http.StatusFound)
		})

		return serveUntilInterrupted(cmd, addr, mux)
	},
}

func serveUntilInterrupted(cmd *cobra.Command, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "serving metrics on %s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func init() {
	rootCmd.AddCommand(serveMetricsCmd)
	serveMetricsCmd.Flags().String("addr", ":9090", "Address to serve /metrics on")
}
