package render

import (
	"bytes"
	"errors"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/dashboard"
)

// ErrNoData is returned when a view has nothing to draw.
var ErrNoData = errors.New("render: view has no data")

// Default canvas size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 480
)

// ContentType is the MIME type of rendered charts.
const ContentType = "image/png"

// Size is a canvas size in pixels. Zero fields fall back to the defaults.
type Size struct {
	Width  int
	Height int
}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	return s
}

var outcomeColors = map[types.Outcome]drawing.Color{
	types.Success: chart.ColorGreen,
	types.Failure: chart.ColorRed,
}

// Pie renders the summary view as a pie chart.
func Pie(v dashboard.SummaryView, size Size) ([]byte, error) {
	if v.Total == 0 {
		return nil, ErrNoData
	}
	size = size.orDefault()

	values := make([]chart.Value, 0, len(v.Slices))
	for _, s := range v.Slices {
		if s.Count == 0 {
			continue
		}
		val := chart.Value{
			Value: float64(s.Count),
			Label: fmt.Sprintf("%s (%d)", s.Label, s.Count),
		}
		if c, ok := outcomeColors[s.Outcome]; ok {
			val.Style = chart.Style{FillColor: c, StrokeColor: chart.ColorWhite}
		}
		values = append(values, val)
	}

	pie := chart.PieChart{
		Title:  v.Title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}

// pointStyle draws markers only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// CategoryColor returns the colour for the category at index i of a sorted
// category list.
func CategoryColor(i int) drawing.Color {
	return chart.GetDefaultColor(i)
}

// Scatter renders the correlation view: x is payload mass, y is outcome.
func Scatter(v dashboard.CorrelationView, size Size) ([]byte, error) {
	if len(v.Points) == 0 {
		return nil, ErrNoData
	}
	size = size.orDefault()

	byCategory := make(map[string]*chart.ContinuousSeries, len(v.Categories))
	series := make([]chart.Series, 0, len(v.Categories))
	for i, cat := range v.Categories {
		s := &chart.ContinuousSeries{
			Name:  cat,
			Style: pointStyle(CategoryColor(i)),
		}
		byCategory[cat] = s
	}
	for _, p := range v.Points {
		s, ok := byCategory[p.BoosterCategory]
		if !ok {
			continue
		}
		s.XValues = append(s.XValues, p.PayloadMassKg)
		s.YValues = append(s.YValues, float64(p.Outcome))
	}
	for _, cat := range v.Categories {
		if s := byCategory[cat]; len(s.XValues) > 0 {
			series = append(series, *s)
		}
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	low, high := v.Low, v.High
	if high <= low {
		// A single-value range still needs a non-zero axis span.
		low, high = low-1, high+1
	}

	ch := chart.Chart{
		Title:      v.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  v.XLabel,
			Range: &chart.ContinuousRange{Min: low, Max: high},
		},
		YAxis: chart.YAxis{
			Name:  v.YLabel,
			Range: &chart.ContinuousRange{Min: -0.5, Max: 1.5},
			Ticks: []chart.Tick{
				{Value: -0.5, Label: ""},
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
				{Value: 1.5, Label: ""},
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter: %w", err)
	}
	return buf.Bytes(), nil
}
