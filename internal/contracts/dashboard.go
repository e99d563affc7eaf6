package contracts

import "github.com/shopspring/decimal"

// DashboardSummary holds the KPI cards of the dashboard
// ⭐ SSOT: 요약 지표는 펀드 목록에서만 파생 (독립 상태 없음)
type DashboardSummary struct {
	TotalFunds int             `json:"total_funds"`
	TotalAUM   decimal.Decimal `json:"total_aum_usd"`
	// AvgFundSize is invalid (JSON null) when TotalFunds == 0
	AvgFundSize       decimal.NullDecimal `json:"avg_fund_size_usd"`
	DataQualityPct    float64             `json:"data_quality_pct"`
	QualityThreshold  float64             `json:"min_confidence_threshold"`
	UniqueStrategies  int                 `json:"unique_strategies"`
	UniqueGeographies int                 `json:"unique_geographies"`
}

// HasData reports whether the summary was built from at least one fund
func (s DashboardSummary) HasData() bool {
	return s.TotalFunds > 0
}

// StrategyBreakdown is one row of the AUM-by-strategy view
type StrategyBreakdown struct {
	Strategy  string          `json:"strategy"`
	TotalAUM  decimal.Decimal `json:"aum_usd"`
	FundCount int             `json:"fund_count"`
	// Percentage is a presentation value (share of total AUM, 0~100).
	// Never aggregate it further.
	Percentage  float64         `json:"percentage"`
	AvgFundSize decimal.Decimal `json:"avg_fund_size_usd"`
}

// VintageBreakdown is one row of the vintage-year view
type VintageBreakdown struct {
	Year      int             `json:"year"`
	FundCount int             `json:"fund_count"`
	TotalAUM  decimal.Decimal `json:"total_aum_usd"`
}

// GeographyBreakdown is one row of the geography view
type GeographyBreakdown struct {
	Geography  string          `json:"geography"`
	FundCount  int             `json:"fund_count"`
	TotalAUM   decimal.Decimal `json:"total_aum_usd"`
	Percentage float64         `json:"percentage"`
}

// GeographyCount is one cell of the strategy × geography cross-tab
type GeographyCount struct {
	Geography string `json:"geography"`
	FundCount int    `json:"fund_count"`
}

// StrategyGeographyBreakdown is one stacked bar: fund counts per geography
// within a strategy
type StrategyGeographyBreakdown struct {
	Strategy    string           `json:"strategy"`
	FundCount   int              `json:"fund_count"`
	Geographies []GeographyCount `json:"geographies"`
}
