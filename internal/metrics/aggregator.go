// Package metrics derives dashboard KPIs and categorical breakdowns from a
// fund list. Every function is pure: output depends only on the input slice,
// which is never modified.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/wonny/pmanalytics/internal/contracts"
)

// DefaultQualityThreshold is the confidence score a fund needs to count as
// high quality ("≥95% confidence" rule of the dashboard).
const DefaultQualityThreshold = 0.95

var hundred = decimal.NewFromInt(100)

// Options controls derived values that depend on policy rather than data
type Options struct {
	QualityThreshold float64
}

// DefaultOptions returns the dashboard defaults
func DefaultOptions() Options {
	return Options{QualityThreshold: DefaultQualityThreshold}
}

// Dashboard bundles the summary and all breakdowns for one fund list
type Dashboard struct {
	Summary             contracts.DashboardSummary             `json:"summary"`
	ByStrategy          []contracts.StrategyBreakdown          `json:"by_strategy"`
	ByVintage           []contracts.VintageBreakdown           `json:"by_vintage"`
	ByGeography         []contracts.GeographyBreakdown         `json:"by_geography"`
	ByStrategyGeography []contracts.StrategyGeographyBreakdown `json:"by_strategy_geography"`
}

// Aggregate computes the summary and every breakdown in one call
func Aggregate(funds []contracts.FundRecord, opts Options) Dashboard {
	return Dashboard{
		Summary:             Summarize(funds, opts.QualityThreshold),
		ByStrategy:          ByStrategy(funds),
		ByVintage:           ByVintage(funds),
		ByGeography:         ByGeography(funds),
		ByStrategyGeography: ByStrategyGeography(funds),
	}
}

// Summarize computes the KPI cards.
// Empty input yields zero totals and an invalid AvgFundSize.
func Summarize(funds []contracts.FundRecord, qualityThreshold float64) contracts.DashboardSummary {
	summary := contracts.DashboardSummary{
		TotalFunds:       len(funds),
		TotalAUM:         decimal.Zero,
		QualityThreshold: qualityThreshold,
	}

	strategies := make(map[string]struct{})
	geographies := make(map[string]struct{})
	highConfidence := 0

	for _, f := range funds {
		summary.TotalAUM = summary.TotalAUM.Add(f.FundSize())
		strategies[f.Strategy()] = struct{}{}
		if f.Geography() != "" {
			geographies[f.Geography()] = struct{}{}
		}
		if f.MeetsConfidence(qualityThreshold) {
			highConfidence++
		}
	}

	summary.UniqueStrategies = len(strategies)
	summary.UniqueGeographies = len(geographies)

	if len(funds) == 0 {
		return summary
	}

	count := decimal.NewFromInt(int64(len(funds)))
	summary.AvgFundSize = decimal.NullDecimal{Decimal: summary.TotalAUM.Div(count), Valid: true}
	summary.DataQualityPct = float64(highConfidence) / float64(len(funds)) * 100

	return summary
}

// ByStrategy groups funds by exact strategy string, in first-seen order
func ByStrategy(funds []contracts.FundRecord) []contracts.StrategyBreakdown {
	keys, buckets, total := groupBy(funds, contracts.FundRecord.Strategy)

	rows := make([]contracts.StrategyBreakdown, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		rows = append(rows, contracts.StrategyBreakdown{
			Strategy:    key,
			TotalAUM:    b.total,
			FundCount:   b.count,
			Percentage:  Share(b.total, total),
			AvgFundSize: b.total.Div(decimal.NewFromInt(int64(b.count))),
		})
	}

	return rows
}

// ByVintage groups funds by exact vintage year, in first-seen order
func ByVintage(funds []contracts.FundRecord) []contracts.VintageBreakdown {
	keys, buckets, _ := groupBy(funds, contracts.FundRecord.VintageYear)

	rows := make([]contracts.VintageBreakdown, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		rows = append(rows, contracts.VintageBreakdown{
			Year:      key,
			FundCount: b.count,
			TotalAUM:  b.total,
		})
	}

	return rows
}

// ByGeography groups funds by exact geography string, in first-seen order
func ByGeography(funds []contracts.FundRecord) []contracts.GeographyBreakdown {
	keys, buckets, total := groupBy(funds, contracts.FundRecord.Geography)

	rows := make([]contracts.GeographyBreakdown, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		rows = append(rows, contracts.GeographyBreakdown{
			Geography:  key,
			FundCount:  b.count,
			TotalAUM:   b.total,
			Percentage: Share(b.total, total),
		})
	}

	return rows
}

// ByStrategyGeography counts funds per geography within each strategy.
// Strategies and the geographies inside each follow first-seen order.
func ByStrategyGeography(funds []contracts.FundRecord) []contracts.StrategyGeographyBreakdown {
	strategies, _, _ := groupBy(funds, contracts.FundRecord.Strategy)

	type cell struct{ strategy, geography string }
	cells, buckets, _ := groupBy(funds, func(f contracts.FundRecord) cell {
		return cell{f.Strategy(), f.Geography()}
	})

	index := make(map[string]int, len(strategies))
	rows := make([]contracts.StrategyGeographyBreakdown, len(strategies))
	for i, s := range strategies {
		index[s] = i
		rows[i] = contracts.StrategyGeographyBreakdown{Strategy: s, Geographies: []contracts.GeographyCount{}}
	}

	// cells are in first-seen order, so appending keeps geography order per strategy
	for _, c := range cells {
		row := &rows[index[c.strategy]]
		n := buckets[c].count
		row.FundCount += n
		row.Geographies = append(row.Geographies, contracts.GeographyCount{Geography: c.geography, FundCount: n})
	}

	return rows
}

// Share returns part/total*100 as a float presentation value.
// A zero total yields 0 for every part.
func Share(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Mul(hundred).Div(total).InexactFloat64()
}

type bucket struct {
	count int
	total decimal.Decimal
}

// groupBy partitions funds by key, keeping first-seen key order.
// Sizes are summed exactly; the grand total is returned alongside.
func groupBy[K comparable](funds []contracts.FundRecord, key func(contracts.FundRecord) K) ([]K, map[K]*bucket, decimal.Decimal) {
	var order []K
	buckets := make(map[K]*bucket)
	total := decimal.Zero

	for _, f := range funds {
		k := key(f)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{total: decimal.Zero}
			buckets[k] = b
			order = append(order, k)
		}
		b.count++
		b.total = b.total.Add(f.FundSize())
		total = total.Add(f.FundSize())
	}

	return order, buckets, total
}
