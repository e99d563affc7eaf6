// Package funds implements the selection filter behind the fund table.
// All functions return new slices and leave their input untouched.
package funds

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wonny/pmanalytics/internal/contracts"
)

// Page size limits of the table view
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Filter selects funds for the table. Zero values mean "no constraint".
type Filter struct {
	Strategy      string
	VintageYear   int
	Geography     string
	MinSize       decimal.NullDecimal
	MaxSize       decimal.NullDecimal
	MinConfidence float64
	// Query is a case-insensitive substring over name, id and source
	Query string
}

// Match reports whether f passes every constraint of the filter
func (flt Filter) Match(f contracts.FundRecord) bool {
	if flt.Strategy != "" && f.Strategy() != flt.Strategy {
		return false
	}
	if flt.VintageYear != 0 && f.VintageYear() != flt.VintageYear {
		return false
	}
	if flt.Geography != "" && f.Geography() != flt.Geography {
		return false
	}
	if flt.MinSize.Valid && f.FundSize().LessThan(flt.MinSize.Decimal) {
		return false
	}
	if flt.MaxSize.Valid && f.FundSize().GreaterThan(flt.MaxSize.Decimal) {
		return false
	}
	if !f.MeetsConfidence(flt.MinConfidence) {
		return false
	}
	if flt.Query != "" {
		q := strings.ToLower(flt.Query)
		if !strings.Contains(strings.ToLower(f.Name()), q) &&
			!strings.Contains(strings.ToLower(f.ID()), q) &&
			!strings.Contains(strings.ToLower(f.Source()), q) {
			return false
		}
	}
	return true
}

// Apply returns the matching funds in input order
func Apply(list []contracts.FundRecord, flt Filter) []contracts.FundRecord {
	out := make([]contracts.FundRecord, 0, len(list))
	for _, f := range list {
		if flt.Match(f) {
			out = append(out, f)
		}
	}
	return out
}

// SortBySizeDesc returns a copy ordered by fund size, largest first.
// Ties keep input order.
func SortBySizeDesc(list []contracts.FundRecord) []contracts.FundRecord {
	out := make([]contracts.FundRecord, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FundSize().GreaterThan(out[j].FundSize())
	})
	return out
}

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page into valid bounds
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Result is one page of the table view
type Result struct {
	Funds    []contracts.FundView `json:"funds"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// List filters, orders by size and paginates
func List(list []contracts.FundRecord, flt Filter, page Page) Result {
	page = page.Normalize()
	matched := SortBySizeDesc(Apply(list, flt))

	result := Result{
		Funds:    []contracts.FundView{},
		Total:    len(matched),
		Page:     page.Number,
		PageSize: page.Size,
	}

	// 곱하기 전에 페이지 수로 비교 (큰 page 값의 int 오버플로 방지)
	pages := (len(matched) + page.Size - 1) / page.Size
	if page.Number > pages {
		return result
	}
	start := (page.Number - 1) * page.Size
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}

	for _, f := range matched[start:end] {
		result.Funds = append(result.Funds, f.View())
	}
	return result
}

// Strategies returns the distinct strategies sorted alphabetically
// (options of the strategy dropdown)
func Strategies(list []contracts.FundRecord) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, f := range list {
		if _, ok := seen[f.Strategy()]; ok {
			continue
		}
		seen[f.Strategy()] = struct{}{}
		out = append(out, f.Strategy())
	}
	sort.Strings(out)
	return out
}
