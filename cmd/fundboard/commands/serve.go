package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/pmanalytics/internal/api"
	"github.com/wonny/pmanalytics/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "로컬 미리보기 서버 시작",
	Long: `Starts a local preview server over the precomputed dashboard snapshot.

Endpoints:
  GET  /health                       - Health check
  GET  /api/dashboard                - KPI summary + breakdowns
  GET  /api/breakdowns/{dimension}   - strategy | vintage | geography | strategy-geography
  GET  /api/charts                   - chart geometry
  GET  /api/charts/{name}.svg        - rendered chart
  GET  /api/meta                     - dataset provenance
  GET  /api/funds                    - filterable fund table
  GET  /api/funds/{id}               - single fund

Example:
  go run ./cmd/fundboard serve
  go run ./cmd/fundboard serve --port 9090`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "server port (default is PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, snap, err := bootstrap()
	if err != nil {
		return err
	}

	if servePort != "" {
		cfg.Port = servePort
	}

	apiLog := log.Component("api")
	router := api.NewRouter(
		handlers.NewDashboardHandler(snap, apiLog),
		handlers.NewFundsHandler(snap, apiLog),
		apiLog,
	)
	server := api.New(cfg, apiLog, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n✅ Preview server running on http://localhost:%s\n", cfg.Port)
	fmt.Fprintf(out, "   Dataset: %s (%d funds)\n", snap.DatasetSource(), snap.Summary().TotalFunds)
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Server stopped unexpectedly")
		}
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
