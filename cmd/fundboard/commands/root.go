package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/pmanalytics/internal/dashboard"
	"github.com/wonny/pmanalytics/internal/dataset"
	"github.com/wonny/pmanalytics/pkg/config"
	"github.com/wonny/pmanalytics/pkg/logger"
)

var (
	// Global flags
	datasetPath string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundboard",
	Short: "Private markets fund dashboard",
	Long: `fundboard builds the private markets fund dashboard from a static
fund dataset: KPI cards, strategy/vintage/geography breakdowns, donut and
bar chart geometry, and a filterable fund table.

Usage:
  go run ./cmd/fundboard [command]

Examples:
  go run ./cmd/fundboard summary
  go run ./cmd/fundboard export --out dist
  go run ./cmd/fundboard serve --port 8080
  go run ./cmd/fundboard summary --dataset ./funds.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "fund dataset YAML (default is DATASET_PATH or the embedded fixture)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// bootstrap loads config, logger, dataset and builds the snapshot
// ⭐ SSOT: 모든 커맨드는 이 함수로 초기화
func bootstrap() (*config.Config, *logger.Logger, *dashboard.Snapshot, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	if datasetPath != "" {
		cfg.Dataset.Path = datasetPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	ds, err := dataset.Open(cfg.Dataset.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load dataset: %w", err)
	}

	snap := dashboard.Build(ds, dashboard.OptionsFromConfig(cfg.Dashboard))

	log.WithFields(map[string]interface{}{
		"source": ds.Source(),
		"funds":  ds.Len(),
		"hash":   ds.Hash(),
	}).Debug("Dashboard snapshot built")

	if !snap.Summary().HasData() {
		log.WithField("source", ds.Source()).Warn("Dataset is empty")
	}

	return cfg, log, snap, nil
}
