package contracts

// ArcSegment describes one donut slice as an SVG stroke-dash pattern.
// All lengths are in circumference units of the donut.
type ArcSegment struct {
	Label          string  `json:"label"`
	Percentage     float64 `json:"percentage"`
	StrokeLength   float64 `json:"stroke_length"`
	StrokeGap      float64 `json:"stroke_gap"`
	RotationOffset float64 `json:"rotation_offset"`
}

// DashArray returns the stroke-dasharray pair (length, gap)
func (a ArcSegment) DashArray() (float64, float64) {
	return a.StrokeLength, a.StrokeGap
}

// Bar is one bar of a bar chart.
// Height is the exact value/max ratio scaled to the series factor; no clamping.
type Bar struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Height float64 `json:"height"`
}

// Series is a named sequence of bars scaled against its own maximum
type Series struct {
	Name string `json:"name"`
	Bars []Bar  `json:"bars"`
}
