package contracts

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() FundInput {
	return FundInput{
		ID:          "kkr-na-xiii",
		Name:        "KKR North America Fund XIII",
		Strategy:    "Buyout",
		VintageYear: 2021,
		Geography:   "North America",
		FundSize:    decimal.RequireFromString("19000000000"),
		Confidence:  1.0,
		Source:      "kkr_10k",
	}
}

func TestNewFundRecord(t *testing.T) {
	f, err := NewFundRecord(validInput())
	require.NoError(t, err)

	assert.Equal(t, "kkr-na-xiii", f.ID())
	assert.Equal(t, "KKR North America Fund XIII", f.Name())
	assert.Equal(t, "Buyout", f.Strategy())
	assert.Equal(t, 2021, f.VintageYear())
	assert.Equal(t, "North America", f.Geography())
	assert.True(t, f.FundSize().Equal(decimal.NewFromInt(19_000_000_000)))
	assert.Equal(t, 1.0, f.Confidence())
	assert.Equal(t, "kkr_10k", f.Source())
}

func TestNewFundRecord_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FundInput)
	}{
		{"missing id", func(in *FundInput) { in.ID = " " }},
		{"missing name", func(in *FundInput) { in.Name = "" }},
		{"missing strategy", func(in *FundInput) { in.Strategy = "" }},
		{"zero vintage", func(in *FundInput) { in.VintageYear = 0 }},
		{"negative size", func(in *FundInput) { in.FundSize = decimal.NewFromInt(-1) }},
		{"confidence above one", func(in *FundInput) { in.Confidence = 1.01 }},
		{"negative confidence", func(in *FundInput) { in.Confidence = -0.5 }},
		{"NaN confidence", func(in *FundInput) { in.Confidence = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := NewFundRecord(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFund))
		})
	}
}

func TestNewFundRecord_ZeroSizeIsValid(t *testing.T) {
	in := validInput()
	in.FundSize = decimal.Zero

	f, err := NewFundRecord(in)
	require.NoError(t, err)
	assert.True(t, f.FundSize().IsZero())
}

func TestMustFundRecord_Panics(t *testing.T) {
	assert.Panics(t, func() { MustFundRecord(FundInput{}) })
}

func TestFundRecord_MeetsConfidence(t *testing.T) {
	in := validInput()
	in.Confidence = 0.95
	f := MustFundRecord(in)

	assert.True(t, f.MeetsConfidence(0.95))
	assert.False(t, f.MeetsConfidence(1.0))
}

func TestFundRecord_View(t *testing.T) {
	data, err := json.Marshal(MustFundRecord(validInput()).View())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "kkr-na-xiii", decoded["id"])
	assert.Equal(t, "19000000000", decoded["fund_size_usd"])
	assert.Equal(t, float64(2021), decoded["vintage_year"])
	assert.Equal(t, "kkr_10k", decoded["data_source"])
}

func TestDashboardSummary_HasData(t *testing.T) {
	assert.False(t, DashboardSummary{}.HasData())
	assert.True(t, DashboardSummary{TotalFunds: 1}.HasData())
}
