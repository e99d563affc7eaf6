package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/pmanalytics/internal/dashboard"
	"github.com/wonny/pmanalytics/internal/render"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "KPI 카드와 breakdown 테이블 출력",
	Long: `Prints the dashboard KPI cards and the strategy, vintage and
geography breakdowns.

Example:
  go run ./cmd/fundboard summary
  go run ./cmd/fundboard summary --json`,
	RunE: runSummary,
}

var (
	summaryJSON bool
)

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print the dashboard as JSON")
}

func runSummary(cmd *cobra.Command, args []string) error {
	_, _, snap, err := bootstrap()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summaryJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Dashboard())
	}

	writeSummary(out, snap)
	return nil
}

// writeSummary prints KPI cards followed by the breakdown tables
func writeSummary(w io.Writer, snap *dashboard.Snapshot) {
	d := snap.Dashboard()
	s := d.Summary

	printHeader(w, "Private Markets Dashboard")
	printKeyValue(w, "Total Funds", strconv.Itoa(s.TotalFunds), 14)
	printKeyValue(w, "Total AUM", render.FormatCurrency(s.TotalAUM), 14)
	printKeyValue(w, "Avg Fund Size", render.FormatOptionalCurrency(s.AvgFundSize), 14)
	printKeyValue(w, "Data Quality", fmt.Sprintf("%s (confidence >= %.2f)", render.FormatPercent(s.DataQualityPct), s.QualityThreshold), 14)
	printKeyValue(w, "Strategies", strconv.Itoa(s.UniqueStrategies), 14)
	printKeyValue(w, "Geographies", strconv.Itoa(s.UniqueGeographies), 14)

	if !s.HasData() {
		printWarning(w, "No funds in dataset")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "AUM by strategy")
	widths := []int{20, 6, 10, 8, 10}
	printTableHeader(w, []string{"Strategy", "Funds", "AUM", "Share", "Avg"}, widths)
	for _, r := range d.ByStrategy {
		printTableRow(w, []string{
			r.Strategy,
			strconv.Itoa(r.FundCount),
			render.FormatCurrency(r.TotalAUM),
			render.FormatPercent(r.Percentage),
			render.FormatCurrency(r.AvgFundSize),
		}, widths)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Funds by vintage")
	widths = []int{8, 6, 10}
	printTableHeader(w, []string{"Vintage", "Funds", "AUM"}, widths)
	for _, r := range d.ByVintage {
		printTableRow(w, []string{
			strconv.Itoa(r.Year),
			strconv.Itoa(r.FundCount),
			render.FormatCurrency(r.TotalAUM),
		}, widths)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "AUM by geography")
	widths = []int{20, 6, 10, 8}
	printTableHeader(w, []string{"Geography", "Funds", "AUM", "Share"}, widths)
	for _, r := range d.ByGeography {
		printTableRow(w, []string{
			r.Geography,
			strconv.Itoa(r.FundCount),
			render.FormatCurrency(r.TotalAUM),
			render.FormatPercent(r.Percentage),
		}, widths)
	}
}
