// Package chart turns breakdown rows into drawable primitives: donut arcs
// expressed as stroke-dash patterns and proportional bar heights.
// Output is a pure function of input order and values.
package chart

import (
	"math"

	"github.com/wonny/pmanalytics/internal/contracts"
)

// DefaultRadius is the donut radius used by the dashboard (SVG user units)
const DefaultRadius = 40.0

// Donut holds the fixed canvas parameters of a donut chart
type Donut struct {
	Radius float64
}

// DefaultDonut returns a donut with DefaultRadius
func DefaultDonut() Donut {
	return Donut{Radius: DefaultRadius}
}

// Circumference returns 2πr
func (d Donut) Circumference() float64 {
	return 2 * math.Pi * d.Radius
}

// Slice is one labelled percentage (0~100) to draw on the donut
type Slice struct {
	Label      string
	Percentage float64
}

// CumulativeOffsets returns, for each position i, the sum of all
// percentages before i. offsets[0] is always 0.
func CumulativeOffsets(percentages []float64) []float64 {
	offsets := make([]float64, len(percentages))
	running := 0.0
	for i, p := range percentages {
		offsets[i] = running
		running += p
	}
	return offsets
}

// Segments converts slices into arc segments in input order.
// Reordering slices changes the rotation offsets.
func (d Donut) Segments(slices []Slice) []contracts.ArcSegment {
	circumference := d.Circumference()

	percentages := make([]float64, len(slices))
	for i, s := range slices {
		percentages[i] = s.Percentage
	}
	offsets := CumulativeOffsets(percentages)

	segments := make([]contracts.ArcSegment, len(slices))
	for i, s := range slices {
		length := s.Percentage / 100 * circumference
		segments[i] = contracts.ArcSegment{
			Label:          s.Label,
			Percentage:     s.Percentage,
			StrokeLength:   length,
			StrokeGap:      circumference - length,
			RotationOffset: offsets[i] / 100 * circumference,
		}
	}

	return segments
}

// StrategySlices maps strategy breakdown rows to donut slices
func StrategySlices(rows []contracts.StrategyBreakdown) []Slice {
	slices := make([]Slice, len(rows))
	for i, r := range rows {
		slices[i] = Slice{Label: r.Strategy, Percentage: r.Percentage}
	}
	return slices
}

// GeographySlices maps geography breakdown rows to donut slices
func GeographySlices(rows []contracts.GeographyBreakdown) []Slice {
	slices := make([]Slice, len(rows))
	for i, r := range rows {
		slices[i] = Slice{Label: r.Geography, Percentage: r.Percentage}
	}
	return slices
}
