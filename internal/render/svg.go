// Package render draws chart geometry as standalone SVG documents.
// It never recomputes geometry: donut arcs and bar heights arrive as
// descriptors from package chart and are only placed on a canvas here.
package render

import (
	"fmt"
	"strings"

	"github.com/wonny/pmanalytics/internal/contracts"
)

// DefaultMinStubPct is the smallest bar height drawn (percent of plot height)
const DefaultMinStubPct = 2.0

// Palette is the series colour cycle
var Palette = []string{
	"#1f4e79", "#2e75b6", "#9dc3e6", "#f4b183",
	"#c55a11", "#70ad47", "#a5a5a5", "#7030a0",
}

// Color returns the palette entry for position i
func Color(i int) string {
	return Palette[i%len(Palette)]
}

// BarConfig holds the canvas of a bar chart
type BarConfig struct {
	Width        int
	Height       int
	MarginTop    int
	MarginBottom int
	MarginSide   int
	MinStubPct   float64
	Title        string
}

// DefaultBarConfig returns the dashboard bar canvas
func DefaultBarConfig() BarConfig {
	return BarConfig{
		Width:        480,
		Height:       260,
		MarginTop:    36,
		MarginBottom: 40,
		MarginSide:   24,
		MinStubPct:   DefaultMinStubPct,
	}
}

func (c BarConfig) plotArea() (x, y, w, h float64) {
	return float64(c.MarginSide), float64(c.MarginTop),
		float64(c.Width - 2*c.MarginSide),
		float64(c.Height - c.MarginTop - c.MarginBottom)
}

// StubHeight clamps a bar height to the minimum visible stub
func StubHeight(height, minStub float64) float64 {
	if height < minStub {
		return minStub
	}
	return height
}

// DonutSVG draws arc segments as dashed circle strokes starting at 12 o'clock.
// The i-th arc is shifted back by its rotation offset (negative dashoffset).
func DonutSVG(segments []contracts.ArcSegment, radius float64, title string) string {
	if len(segments) == 0 {
		return emptySVG(320, 200, "No data")
	}

	stroke := radius * 0.3
	size := 2 * (radius + stroke)
	center := size / 2
	legendWidth := 180.0
	width := size + legendWidth
	height := size
	if legendHeight := float64(len(segments))*16 + 24; legendHeight > height {
		height = legendHeight
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(width, height))
	if title != "" {
		fmt.Fprintf(&sb, `<title>%s</title>`, escapeXML(title))
	}

	// track
	fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="#eeeeee" stroke-width="%s"/>`,
		num(center), num(center), num(radius), num(stroke))

	for i, seg := range segments {
		length, gap := seg.DashArray()
		fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-dasharray="%s %s" stroke-dashoffset="%s" transform="rotate(-90 %s %s)"><title>%s %s%%</title></circle>`,
			num(center), num(center), num(radius), Color(i), num(stroke),
			num(length), num(gap), num(-seg.RotationOffset),
			num(center), num(center),
			escapeXML(seg.Label), num1(seg.Percentage))
	}

	// legend
	lx := size + 12
	for i, seg := range segments {
		y := 20 + float64(i)*16
		fmt.Fprintf(&sb, `<rect x="%s" y="%s" width="10" height="10" fill="%s"/>`, num(lx), num(y-9), Color(i))
		fmt.Fprintf(&sb, `<text x="%s" y="%s" font-size="11" fill="#333333">%s (%s%%)</text>`,
			num(lx+16), num(y), escapeXML(seg.Label), num1(seg.Percentage))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// BarSVG draws one bar series. Heights are percentages of the plot height;
// anything below cfg.MinStubPct is drawn as a stub.
func BarSVG(bars []contracts.Bar, cfg BarConfig) string {
	if len(bars) == 0 {
		return emptySVG(cfg.Width, cfg.Height, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultBarConfig()
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(float64(cfg.Width), float64(cfg.Height)))
	writeTitle(&sb, cfg)
	writeBars(&sb, bars, cfg, Color(0))
	sb.WriteString(`</svg>`)
	return sb.String()
}

// OverlaySVG draws the first series as bars and every following series as a
// polyline through the bar centres. Each series keeps its own scale.
func OverlaySVG(series []contracts.Series, cfg BarConfig) string {
	if len(series) == 0 || len(series[0].Bars) == 0 {
		return emptySVG(cfg.Width, cfg.Height, "No data")
	}
	if cfg.Width == 0 {
		cfg = DefaultBarConfig()
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(float64(cfg.Width), float64(cfg.Height)))
	writeTitle(&sb, cfg)
	writeBars(&sb, series[0].Bars, cfg, Color(0))

	px, py, pw, ph := cfg.plotArea()
	slot := pw / float64(len(series[0].Bars))
	for si, s := range series[1:] {
		points := make([]string, 0, len(s.Bars))
		for i, b := range s.Bars {
			x := px + slot*(float64(i)+0.5)
			y := py + ph - b.Height/100*ph
			points = append(points, num(x)+","+num(y))
		}
		color := Color(si + 4)
		fmt.Fprintf(&sb, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"><title>%s</title></polyline>`,
			strings.Join(points, " "), color, escapeXML(s.Name))
		for _, p := range points {
			xy := strings.SplitN(p, ",", 2)
			fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="3" fill="%s"/>`, xy[0], xy[1], color)
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func writeTitle(sb *strings.Builder, cfg BarConfig) {
	if cfg.Title == "" {
		return
	}
	fmt.Fprintf(sb, `<text x="%d" y="20" text-anchor="middle" font-size="13" font-weight="bold" fill="#333333">%s</text>`,
		cfg.Width/2, escapeXML(cfg.Title))
}

func writeBars(sb *strings.Builder, bars []contracts.Bar, cfg BarConfig, color string) {
	px, py, pw, ph := cfg.plotArea()
	slot := pw / float64(len(bars))
	barWidth := slot * 0.7

	// baseline
	fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#cccccc"/>`,
		num(px), num(py+ph), num(px+pw), num(py+ph))

	for i, b := range bars {
		h := StubHeight(b.Height, cfg.MinStubPct) / 100 * ph
		x := px + slot*float64(i) + (slot-barWidth)/2
		y := py + ph - h
		fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s: %s</title></rect>`,
			num(x), num(y), num(barWidth), num(h), color, escapeXML(b.Label), num(b.Value))
		fmt.Fprintf(sb, `<text x="%s" y="%s" text-anchor="middle" font-size="10" fill="#666666">%s</text>`,
			num(x+barWidth/2), num(py+ph+14), escapeXML(b.Label))
	}
}

func svgHeader(width, height float64) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif">`,
		num(width), num(height), num(width), num(height))
}

func emptySVG(width, height int, msg string) string {
	if width == 0 {
		width = 320
	}
	if height == 0 {
		height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999999" font-size="14">%s</text></svg>`,
		width, height, width, height, width/2, height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// num formats coordinates with two decimals so output is byte-stable
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func num1(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
