package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/pmanalytics/internal/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "정적 번들 생성 (JSON + SVG + manifest)",
	Long: `Writes the static dashboard bundle:

  dashboard.json        KPI summary and breakdowns
  funds.json            fund table rows and strategy options
  charts.json           donut and bar geometry
  *.svg                 pre-rendered charts
  manifest.json         build id, dataset hash, file list

Example:
  go run ./cmd/fundboard export
  go run ./cmd/fundboard export --out ./public/data`,
	RunE: runExport,
}

var (
	exportOut string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (default is EXPORT_DIR)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, snap, err := bootstrap()
	if err != nil {
		return err
	}

	dir := cfg.Export.Dir
	if exportOut != "" {
		dir = exportOut
	}

	start := time.Now()
	manifest, err := export.New(log).Write(cmd.Context(), snap, dir)
	if err != nil {
		log.WithError(err).Error("Export failed")
		return fmt.Errorf("export: %w", err)
	}

	out := cmd.OutOrStdout()
	printHeader(out, "Export")
	printKeyValue(out, "Build ID", manifest.BuildID, 10)
	printKeyValue(out, "Dataset", manifest.DatasetHash[:12], 10)
	printKeyValue(out, "Directory", dir, 10)
	printSeparator(out)
	for _, f := range manifest.Files {
		fmt.Fprintf(out, "   • %-22s %8d bytes\n", f.Name, f.Bytes)
	}
	printSuccess(out, fmt.Sprintf("%d files written in %.2fs", len(manifest.Files)+1, time.Since(start).Seconds()))

	return nil
}
