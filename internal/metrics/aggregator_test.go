package metrics

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/pmanalytics/internal/contracts"
)

func fund(id, strategy string, vintage int, geography string, size int64, confidence float64) contracts.FundRecord {
	return contracts.MustFundRecord(contracts.FundInput{
		ID:          id,
		Name:        "Fund " + id,
		Strategy:    strategy,
		VintageYear: vintage,
		Geography:   geography,
		FundSize:    decimal.NewFromInt(size),
		Confidence:  confidence,
		Source:      "sec_form_d",
	})
}

func sampleFunds() []contracts.FundRecord {
	return []contracts.FundRecord{
		fund("f1", "Buyout", 2020, "North America", 24_600, 1.0),
		fund("f2", "Infrastructure", 2021, "Global", 15_000, 1.0),
		fund("f3", "Buyout", 2021, "Europe", 12_500, 0.97),
		fund("f4", "Growth Equity", 2020, "North America", 4_700, 0.95),
		fund("f5", "Venture Capital", 2022, "North America", 2_200, 0.90),
		fund("f6", "Buyout", 2022, "Asia-Pacific", 7_300, 1.0),
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleFunds(), DefaultQualityThreshold)

	assert.Equal(t, 6, s.TotalFunds)
	assert.True(t, s.TotalAUM.Equal(decimal.NewFromInt(66_300)), "total = %s", s.TotalAUM)
	require.True(t, s.AvgFundSize.Valid)
	assert.True(t, s.AvgFundSize.Decimal.Equal(decimal.NewFromInt(11_050)), "avg = %s", s.AvgFundSize.Decimal)
	assert.InDelta(t, 5.0/6*100, s.DataQualityPct, 1e-9)
	assert.Equal(t, DefaultQualityThreshold, s.QualityThreshold)
	assert.Equal(t, 4, s.UniqueStrategies)
	assert.Equal(t, 4, s.UniqueGeographies)
	assert.True(t, s.HasData())
}

func TestSummarize_AverageIsTotalOverCount(t *testing.T) {
	funds := []contracts.FundRecord{
		fund("a", "Buyout", 2020, "Europe", 100, 1),
		fund("b", "Buyout", 2020, "Europe", 200, 1),
		fund("c", "Buyout", 2020, "Europe", 401, 1),
	}

	s := Summarize(funds, DefaultQualityThreshold)
	want := s.TotalAUM.Div(decimal.NewFromInt(int64(s.TotalFunds)))
	assert.True(t, s.AvgFundSize.Decimal.Equal(want))
}

func TestSummarize_QualityThreshold(t *testing.T) {
	funds := sampleFunds()

	assert.InDelta(t, 50.0, Summarize(funds, 1.0).DataQualityPct, 1e-9)
	assert.InDelta(t, 100.0, Summarize(funds, 0).DataQualityPct, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	for _, funds := range [][]contracts.FundRecord{nil, {}} {
		d := Aggregate(funds, DefaultOptions())

		assert.Equal(t, 0, d.Summary.TotalFunds)
		assert.True(t, d.Summary.TotalAUM.IsZero())
		assert.False(t, d.Summary.AvgFundSize.Valid, "average is the no-data sentinel")
		assert.Equal(t, 0.0, d.Summary.DataQualityPct)
		assert.False(t, d.Summary.HasData())

		assert.NotNil(t, d.ByStrategy)
		assert.Empty(t, d.ByStrategy)
		assert.NotNil(t, d.ByVintage)
		assert.Empty(t, d.ByVintage)
		assert.NotNil(t, d.ByGeography)
		assert.Empty(t, d.ByGeography)
		assert.NotNil(t, d.ByStrategyGeography)
		assert.Empty(t, d.ByStrategyGeography)
	}
}

func TestAggregate_EmptyJSON(t *testing.T) {
	data, err := json.Marshal(Aggregate(nil, DefaultOptions()))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	summary := decoded["summary"].(map[string]interface{})
	assert.Nil(t, summary["avg_fund_size_usd"])
	assert.Equal(t, []interface{}{}, decoded["by_strategy"])
}

func TestByStrategy(t *testing.T) {
	rows := ByStrategy(sampleFunds())
	require.Len(t, rows, 4)

	// first-seen order
	assert.Equal(t, []string{"Buyout", "Infrastructure", "Growth Equity", "Venture Capital"},
		[]string{rows[0].Strategy, rows[1].Strategy, rows[2].Strategy, rows[3].Strategy})

	buyout := rows[0]
	assert.Equal(t, 3, buyout.FundCount)
	assert.True(t, buyout.TotalAUM.Equal(decimal.NewFromInt(44_400)))
	assert.True(t, buyout.AvgFundSize.Equal(decimal.NewFromInt(14_800)))
	assert.InDelta(t, 44_400.0/66_300*100, buyout.Percentage, 1e-9)
}

func TestByStrategy_CaseSensitive(t *testing.T) {
	rows := ByStrategy([]contracts.FundRecord{
		fund("a", "Buyout", 2020, "Europe", 10, 1),
		fund("b", "buyout", 2020, "Europe", 10, 1),
	})
	assert.Len(t, rows, 2)
}

func TestByStrategy_ZeroSize(t *testing.T) {
	rows := ByStrategy([]contracts.FundRecord{
		fund("a", "Buyout", 2020, "Europe", 100, 1),
		fund("b", "Secondary", 2020, "Europe", 0, 1),
	})
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[1].FundCount)
	assert.True(t, rows[1].TotalAUM.IsZero())
	assert.Equal(t, 0.0, rows[1].Percentage)
	assert.Equal(t, 100.0, rows[0].Percentage)
}

func TestByStrategy_AllZeroSizes(t *testing.T) {
	rows := ByStrategy([]contracts.FundRecord{
		fund("a", "Buyout", 2020, "Europe", 0, 1),
		fund("b", "Secondary", 2020, "Europe", 0, 1),
	})
	for _, r := range rows {
		assert.Equal(t, 0.0, r.Percentage)
	}
}

func TestByVintage(t *testing.T) {
	rows := ByVintage(sampleFunds())
	require.Len(t, rows, 3)

	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, 2, rows[0].FundCount)
	assert.True(t, rows[0].TotalAUM.Equal(decimal.NewFromInt(29_300)))

	assert.Equal(t, 2021, rows[1].Year)
	assert.Equal(t, 2022, rows[2].Year)
}

func TestByGeography(t *testing.T) {
	rows := ByGeography(sampleFunds())
	require.Len(t, rows, 4)

	assert.Equal(t, "North America", rows[0].Geography)
	assert.Equal(t, 3, rows[0].FundCount)
	assert.InDelta(t, 31_500.0/66_300*100, rows[0].Percentage, 1e-9)
}

func TestByStrategyGeography(t *testing.T) {
	rows := ByStrategyGeography(sampleFunds())
	require.Len(t, rows, 4)

	assert.Equal(t, "Buyout", rows[0].Strategy)
	assert.Equal(t, 3, rows[0].FundCount)
	assert.Equal(t, []contracts.GeographyCount{
		{Geography: "North America", FundCount: 1},
		{Geography: "Europe", FundCount: 1},
		{Geography: "Asia-Pacific", FundCount: 1},
	}, rows[0].Geographies)

	assert.Equal(t, "Infrastructure", rows[1].Strategy)
	assert.Equal(t, []contracts.GeographyCount{{Geography: "Global", FundCount: 1}}, rows[1].Geographies)
}

func TestByStrategyGeography_CountsPerCell(t *testing.T) {
	funds := []contracts.FundRecord{
		fund("a", "Buyout", 2020, "Europe", 10, 1),
		fund("b", "Venture Capital", 2020, "Europe", 10, 1),
		fund("c", "Buyout", 2021, "Global", 10, 1),
		fund("d", "Buyout", 2022, "Europe", 10, 1),
	}

	rows := ByStrategyGeography(funds)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].FundCount)
	assert.Equal(t, []contracts.GeographyCount{
		{Geography: "Europe", FundCount: 2},
		{Geography: "Global", FundCount: 1},
	}, rows[0].Geographies)
	assert.Equal(t, "Venture Capital", rows[1].Strategy)
}

func TestProperty_CrossTabMatchesStrategyCounts(t *testing.T) {
	for _, funds := range generatedLists() {
		byStrategy := ByStrategy(funds)
		cross := ByStrategyGeography(funds)
		require.Len(t, cross, len(byStrategy))

		for i, row := range cross {
			assert.Equal(t, byStrategy[i].Strategy, row.Strategy)
			assert.Equal(t, byStrategy[i].FundCount, row.FundCount)

			sum := 0
			for _, g := range row.Geographies {
				sum += g.FundCount
			}
			assert.Equal(t, row.FundCount, sum)
		}
	}
}

// generated fund lists of varying shape
func generatedLists() [][]contracts.FundRecord {
	strategies := []string{"Buyout", "Infrastructure", "Growth Equity", "Venture Capital", "Real Estate", "Secondary", "Co-Investment"}
	geographies := []string{"North America", "Europe", "Asia-Pacific", "Global"}

	var lists [][]contracts.FundRecord
	for n := 1; n <= 40; n += 3 {
		funds := make([]contracts.FundRecord, 0, n)
		for i := 0; i < n; i++ {
			funds = append(funds, fund(
				fmt.Sprintf("g%d-%d", n, i),
				strategies[(i*5+n)%len(strategies)],
				2015+(i*3+n)%9,
				geographies[(i+n)%len(geographies)],
				int64((i*7919+n*104729)%50_000),
				float64((i+n)%21)/20,
			))
		}
		lists = append(lists, funds)
	}
	return lists
}

func TestProperty_StrategyPercentagesSumTo100(t *testing.T) {
	for _, funds := range generatedLists() {
		d := Aggregate(funds, DefaultOptions())
		if d.Summary.TotalAUM.IsZero() {
			continue
		}

		sum := 0.0
		for _, r := range d.ByStrategy {
			sum += r.Percentage
		}
		tolerance := 0.1 * float64(len(d.ByStrategy))
		assert.InDelta(t, 100.0, sum, tolerance, "n=%d", len(funds))
	}
}

func TestProperty_CountsSumToTotal(t *testing.T) {
	for _, funds := range generatedLists() {
		d := Aggregate(funds, DefaultOptions())

		strategyCount, vintageCount, geoCount := 0, 0, 0
		for _, r := range d.ByStrategy {
			strategyCount += r.FundCount
		}
		for _, r := range d.ByVintage {
			vintageCount += r.FundCount
		}
		for _, r := range d.ByGeography {
			geoCount += r.FundCount
		}

		assert.Equal(t, d.Summary.TotalFunds, strategyCount)
		assert.Equal(t, d.Summary.TotalFunds, vintageCount)
		assert.Equal(t, d.Summary.TotalFunds, geoCount)
	}
}

func TestProperty_SizeSumsAreExact(t *testing.T) {
	for _, funds := range generatedLists() {
		d := Aggregate(funds, DefaultOptions())

		sum := decimal.Zero
		for _, r := range d.ByVintage {
			sum = sum.Add(r.TotalAUM)
		}
		assert.True(t, sum.Equal(d.Summary.TotalAUM))
	}
}

func TestProperty_TotalsIgnoreInputOrder(t *testing.T) {
	for _, funds := range generatedLists() {
		reversed := make([]contracts.FundRecord, len(funds))
		for i, f := range funds {
			reversed[len(funds)-1-i] = f
		}

		a := Summarize(funds, DefaultQualityThreshold)
		b := Summarize(reversed, DefaultQualityThreshold)

		assert.True(t, a.TotalAUM.Equal(b.TotalAUM))
		assert.Equal(t, a.TotalFunds, b.TotalFunds)
		assert.Equal(t, a.DataQualityPct, b.DataQualityPct)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	funds := sampleFunds()
	first := Aggregate(funds, DefaultOptions())
	second := Aggregate(funds, DefaultOptions())

	// decimal.Decimal has unexported fields; compare through JSON
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)

	if diff := cmp.Diff(string(a), string(b)); diff != "" {
		t.Errorf("Aggregate() not deterministic:\n%s", diff)
	}
}

func TestShare(t *testing.T) {
	assert.Equal(t, 0.0, Share(decimal.NewFromInt(5), decimal.Zero))
	assert.InDelta(t, 25.0, Share(decimal.NewFromInt(1), decimal.NewFromInt(4)), 1e-12)
}
