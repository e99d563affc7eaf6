package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	billion = decimal.NewFromInt(1_000_000_000)
	million = decimal.NewFromInt(1_000_000)
)

// FormatCurrency renders a USD amount for KPI cards:
// $19.0B above a billion, $350.0M above a million, $9,500 otherwise.
func FormatCurrency(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}

	switch {
	case v.GreaterThanOrEqual(billion):
		return sign + "$" + v.Div(billion).StringFixed(1) + "B"
	case v.GreaterThanOrEqual(million):
		return sign + "$" + v.Div(million).StringFixed(1) + "M"
	default:
		return sign + "$" + groupThousands(v.StringFixed(0))
	}
}

// FormatOptionalCurrency renders "—" for a missing value
func FormatOptionalCurrency(v decimal.NullDecimal) string {
	if !v.Valid {
		return "—"
	}
	return FormatCurrency(v.Decimal)
}

// FormatPercent renders a one-decimal percentage
func FormatPercent(v float64) string {
	return num1(v) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
