package contracts

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidFund is returned when a fund record fails construction checks
var ErrInvalidFund = errors.New("invalid fund record")

// FundRecord is one fund in the dashboard dataset
// ⭐ SSOT: 펀드 레코드는 NewFundRecord로만 생성 (생성 후 불변)
type FundRecord struct {
	id          string
	name        string
	strategy    string
	vintageYear int
	geography   string
	fundSize    decimal.Decimal
	confidence  float64
	source      string
}

// FundInput holds the raw fields of a fund record before validation
type FundInput struct {
	ID          string
	Name        string
	Strategy    string
	VintageYear int
	Geography   string
	FundSize    decimal.Decimal
	Confidence  float64
	Source      string
}

// NewFundRecord validates in and returns an immutable FundRecord.
// Strategy and geography are kept verbatim; grouping is case-sensitive.
func NewFundRecord(in FundInput) (FundRecord, error) {
	switch {
	case strings.TrimSpace(in.ID) == "":
		return FundRecord{}, fmt.Errorf("%w: missing id", ErrInvalidFund)
	case strings.TrimSpace(in.Name) == "":
		return FundRecord{}, fmt.Errorf("%w: fund %s: missing name", ErrInvalidFund, in.ID)
	case strings.TrimSpace(in.Strategy) == "":
		return FundRecord{}, fmt.Errorf("%w: fund %s: missing strategy", ErrInvalidFund, in.ID)
	case in.VintageYear <= 0:
		return FundRecord{}, fmt.Errorf("%w: fund %s: vintage year %d", ErrInvalidFund, in.ID, in.VintageYear)
	case in.FundSize.IsNegative():
		return FundRecord{}, fmt.Errorf("%w: fund %s: negative fund size %s", ErrInvalidFund, in.ID, in.FundSize)
	case math.IsNaN(in.Confidence) || in.Confidence < 0 || in.Confidence > 1:
		return FundRecord{}, fmt.Errorf("%w: fund %s: confidence %v outside [0,1]", ErrInvalidFund, in.ID, in.Confidence)
	}

	return FundRecord{
		id:          in.ID,
		name:        in.Name,
		strategy:    in.Strategy,
		vintageYear: in.VintageYear,
		geography:   in.Geography,
		fundSize:    in.FundSize,
		confidence:  in.Confidence,
		source:      in.Source,
	}, nil
}

// MustFundRecord is NewFundRecord that panics on error (fixtures, tests)
func MustFundRecord(in FundInput) FundRecord {
	f, err := NewFundRecord(in)
	if err != nil {
		panic(err)
	}
	return f
}

func (f FundRecord) ID() string                { return f.id }
func (f FundRecord) Name() string              { return f.name }
func (f FundRecord) Strategy() string          { return f.strategy }
func (f FundRecord) VintageYear() int          { return f.vintageYear }
func (f FundRecord) Geography() string         { return f.geography }
func (f FundRecord) FundSize() decimal.Decimal { return f.fundSize }
func (f FundRecord) Confidence() float64       { return f.confidence }
func (f FundRecord) Source() string            { return f.source }

// MeetsConfidence reports whether the record's confidence is at or above threshold
func (f FundRecord) MeetsConfidence(threshold float64) bool {
	return f.confidence >= threshold
}

// FundView is the JSON shape of a fund row in the table view
type FundView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Strategy    string          `json:"strategy"`
	VintageYear int             `json:"vintage_year"`
	Geography   string          `json:"geography"`
	FundSize    decimal.Decimal `json:"fund_size_usd"`
	Confidence  float64         `json:"data_confidence_score"`
	Source      string          `json:"data_source"`
}

// View returns the serializable representation of the record
func (f FundRecord) View() FundView {
	return FundView{
		ID:          f.id,
		Name:        f.name,
		Strategy:    f.strategy,
		VintageYear: f.vintageYear,
		Geography:   f.geography,
		FundSize:    f.fundSize,
		Confidence:  f.confidence,
		Source:      f.source,
	}
}
