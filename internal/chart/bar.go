package chart

import (
	"math"
	"strconv"

	"github.com/wonny/pmanalytics/internal/contracts"
)

// FullHeight is the height of the tallest bar in a series (percent)
const FullHeight = 100.0

// Point is one labelled value of a bar series
type Point struct {
	Label string
	Value float64
}

// Scale returns value/max(values)*factor for each value.
// Empty input yields an empty slice; a non-positive peak yields all zeros.
func Scale(values []float64, factor float64) []float64 {
	scaled := make([]float64, len(values))
	if len(values) == 0 {
		return scaled
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return scaled
	}

	for i, v := range values {
		scaled[i] = v / peak * factor
	}
	return scaled
}

// BarHeights returns each value as a percentage of the largest value
func BarHeights(values []float64) []float64 {
	return Scale(values, FullHeight)
}

// Bars builds a bar series scaled to factor against its own maximum
func Bars(points []Point, factor float64) []contracts.Bar {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	heights := Scale(values, factor)

	bars := make([]contracts.Bar, len(points))
	for i, p := range points {
		bars[i] = contracts.Bar{Label: p.Label, Value: p.Value, Height: heights[i]}
	}
	return bars
}

// SeriesInput is one series of an overlay chart
type SeriesInput struct {
	Name   string
	Points []Point
	Factor float64
}

// Overlay scales each series independently; series never share a denominator
func Overlay(inputs ...SeriesInput) []contracts.Series {
	series := make([]contracts.Series, len(inputs))
	for i, in := range inputs {
		series[i] = contracts.Series{Name: in.Name, Bars: Bars(in.Points, in.Factor)}
	}
	return series
}

// StrategyCountPoints maps strategy rows to fund-count points
func StrategyCountPoints(rows []contracts.StrategyBreakdown) []Point {
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{Label: r.Strategy, Value: float64(r.FundCount)}
	}
	return points
}

// VintageCountPoints maps vintage rows to fund-count points
func VintageCountPoints(rows []contracts.VintageBreakdown) []Point {
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{Label: strconv.Itoa(r.Year), Value: float64(r.FundCount)}
	}
	return points
}

// VintageAUMPoints maps vintage rows to aggregate-size points
func VintageAUMPoints(rows []contracts.VintageBreakdown) []Point {
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{Label: strconv.Itoa(r.Year), Value: r.TotalAUM.InexactFloat64()}
	}
	return points
}

// VintageOverlay is fund count bars with aggregate size overlaid,
// each scaled to FullHeight against its own maximum.
func VintageOverlay(rows []contracts.VintageBreakdown) []contracts.Series {
	return Overlay(
		SeriesInput{Name: "fund_count", Points: VintageCountPoints(rows), Factor: FullHeight},
		SeriesInput{Name: "total_aum_usd", Points: VintageAUMPoints(rows), Factor: FullHeight},
	)
}

// Round1 rounds v to one decimal place for display
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
