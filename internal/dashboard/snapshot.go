// Package dashboard composes aggregation, chart geometry and rendered SVGs
// into one immutable Snapshot. The export and the preview server both read
// from a Snapshot; neither recomputes anything.
package dashboard

import (
	"sort"
	"time"

	"github.com/wonny/pmanalytics/internal/chart"
	"github.com/wonny/pmanalytics/internal/contracts"
	"github.com/wonny/pmanalytics/internal/dataset"
	"github.com/wonny/pmanalytics/internal/funds"
	"github.com/wonny/pmanalytics/internal/metrics"
	"github.com/wonny/pmanalytics/internal/render"
	"github.com/wonny/pmanalytics/pkg/config"
)

// Chart names (also the SVG file stems of the export)
const (
	ChartStrategyDonut  = "strategy-donut"
	ChartGeographyDonut = "geography-donut"
	ChartStrategyBars   = "strategy-bars"
	ChartVintageOverlay = "vintage-overlay"
)

// Options are the policy knobs of a build
type Options struct {
	Metrics     metrics.Options
	DonutRadius float64
	MinStubPct  float64
}

// DefaultOptions returns the dashboard defaults
func DefaultOptions() Options {
	return Options{
		Metrics:     metrics.DefaultOptions(),
		DonutRadius: chart.DefaultRadius,
		MinStubPct:  render.DefaultMinStubPct,
	}
}

// OptionsFromConfig maps DashboardConfig onto build options
func OptionsFromConfig(cfg config.DashboardConfig) Options {
	return Options{
		Metrics:     metrics.Options{QualityThreshold: cfg.MinConfidenceScore},
		DonutRadius: cfg.DonutRadius,
		MinStubPct:  cfg.BarMinStubPct,
	}
}

// Charts is the geometry of every dashboard chart
type Charts struct {
	DonutRadius    float64                `json:"donut_radius"`
	Circumference  float64                `json:"circumference"`
	StrategyDonut  []contracts.ArcSegment `json:"strategy_donut"`
	GeographyDonut []contracts.ArcSegment `json:"geography_donut"`
	StrategyBars   []contracts.Bar        `json:"strategy_bars"`
	VintageOverlay []contracts.Series     `json:"vintage_overlay"`
}

// Snapshot is the fully derived dashboard for one dataset
type Snapshot struct {
	dashboard     metrics.Dashboard
	charts        Charts
	svgs          map[string]string
	funds         []contracts.FundRecord
	strategies    []string
	datasetHash   string
	datasetSource string
	builtAt       time.Time
}

// Build derives everything the dashboard shows from ds
func Build(ds *dataset.Dataset, opts Options) *Snapshot {
	list := ds.Funds()
	agg := metrics.Aggregate(list, opts.Metrics)

	donut := chart.Donut{Radius: opts.DonutRadius}
	charts := Charts{
		DonutRadius:    donut.Radius,
		Circumference:  donut.Circumference(),
		StrategyDonut:  donut.Segments(chart.StrategySlices(agg.ByStrategy)),
		GeographyDonut: donut.Segments(chart.GeographySlices(agg.ByGeography)),
		StrategyBars:   chart.Bars(chart.StrategyCountPoints(agg.ByStrategy), chart.FullHeight),
		VintageOverlay: chart.VintageOverlay(agg.ByVintage),
	}

	barCfg := render.DefaultBarConfig()
	barCfg.MinStubPct = opts.MinStubPct

	strategyBarsCfg := barCfg
	strategyBarsCfg.Title = "Funds by strategy"
	vintageCfg := barCfg
	vintageCfg.Title = "Funds and AUM by vintage"

	svgs := map[string]string{
		ChartStrategyDonut:  render.DonutSVG(charts.StrategyDonut, donut.Radius, "AUM by strategy"),
		ChartGeographyDonut: render.DonutSVG(charts.GeographyDonut, donut.Radius, "AUM by geography"),
		ChartStrategyBars:   render.BarSVG(charts.StrategyBars, strategyBarsCfg),
		ChartVintageOverlay: render.OverlaySVG(charts.VintageOverlay, vintageCfg),
	}

	return &Snapshot{
		dashboard:     agg,
		charts:        charts,
		svgs:          svgs,
		funds:         list,
		strategies:    funds.Strategies(list),
		datasetHash:   ds.Hash(),
		datasetSource: ds.Source(),
		builtAt:       time.Now().UTC(),
	}
}

// Dashboard returns the summary and breakdowns
func (s *Snapshot) Dashboard() metrics.Dashboard {
	return s.dashboard
}

// Summary returns the KPI cards
func (s *Snapshot) Summary() contracts.DashboardSummary {
	return s.dashboard.Summary
}

// Charts returns the chart geometry
func (s *Snapshot) Charts() Charts {
	return s.charts
}

// SVG returns the rendered chart by name
func (s *Snapshot) SVG(name string) (string, bool) {
	svg, ok := s.svgs[name]
	return svg, ok
}

// ChartNames returns the names of all rendered charts, sorted
func (s *Snapshot) ChartNames() []string {
	names := make([]string, 0, len(s.svgs))
	for name := range s.svgs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Funds returns a copy of the fund records in dataset order
func (s *Snapshot) Funds() []contracts.FundRecord {
	out := make([]contracts.FundRecord, len(s.funds))
	copy(out, s.funds)
	return out
}

// Fund looks up a single fund by identifier
func (s *Snapshot) Fund(id string) (contracts.FundRecord, bool) {
	for _, f := range s.funds {
		if f.ID() == id {
			return f, true
		}
	}
	return contracts.FundRecord{}, false
}

// Strategies returns the strategy dropdown options
func (s *Snapshot) Strategies() []string {
	out := make([]string, len(s.strategies))
	copy(out, s.strategies)
	return out
}

// List runs the table filter over the snapshot's funds
func (s *Snapshot) List(filter funds.Filter, page funds.Page) funds.Result {
	return funds.List(s.funds, filter, page)
}

// DatasetHash returns the content hash of the source dataset
func (s *Snapshot) DatasetHash() string {
	return s.datasetHash
}

// DatasetSource returns where the dataset came from
func (s *Snapshot) DatasetSource() string {
	return s.datasetSource
}

// BuiltAt returns the build time (UTC)
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
