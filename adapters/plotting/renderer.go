package plotting

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"os"

	"clockrate/domain/measurement"
	"clockrate/internal/analysis"
	"clockrate/internal/errors"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const tickCount = 8

var gridStyle = chart.Style{
	StrokeColor: drawing.ColorFromHex("d9d9d9"),
	StrokeWidth: 1,
}

// Renderer draws measurement charts as PNG images
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer producing width x height pixel images
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// DeviationChart plots the signed percentage error against the desired rate
func (r *Renderer) DeviationChart(table *measurement.Table) (*chart.Chart, error) {
	xs, ys, skipped := finitePoints(table.Desired(), analysis.SignedPercentError(table))
	if len(xs) == 0 {
		return nil, errors.RenderError("no finite points to plot", nil)
	}
	if skipped > 0 {
		log.Printf("[Chart] skipped %d rows with a non-finite error (Actual == 0)", skipped)
	}

	xAxis := r.xAxis("Desired Clock Rate", xs)
	yMin, yMax, _ := finiteRange(ys)
	yMin, yMax = niceAxisBounds(yMin, yMax)
	yAxis := chart.YAxis{
		Name:           "Error (%)",
		Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
		Ticks:          niceTicks(yMin, yMax, tickCount, percentLabel),
		ValueFormatter: percentFormatter,
		GridMajorStyle: gridStyle,
	}

	return r.newChart("Clock Rate Error", xAxis, yAxis, []chart.Series{
		chart.ContinuousSeries{
			Name:    "Error",
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
		},
	}), nil
}

// CompareChart plots actual against desired rate with the ideal y = x line
func (r *Renderer) CompareChart(table *measurement.Table) (*chart.Chart, error) {
	desired, actual := table.Desired(), table.Actual()
	xs, ys, _ := finitePoints(desired, actual)
	if len(xs) == 0 {
		return nil, errors.RenderError("no finite points to plot", nil)
	}

	_, maxVal, _ := finiteRange(xs, ys)
	if maxVal <= 0 {
		maxVal = 1
	}
	ideal := []float64{0, maxVal}

	xAxis := r.xAxis("Desired Clock Rate", xs, []float64{0})
	lo, hi := niceAxisBounds(math.Min(0, minOf(ys)), maxVal)
	yAxis := chart.YAxis{
		Name:           "Actual Clock Rate",
		Range:          &chart.ContinuousRange{Min: lo, Max: hi},
		Ticks:          niceTicks(lo, hi, tickCount, numberLabel),
		GridMajorStyle: gridStyle,
	}

	return r.newChart("Desired vs Actual Clock Rate", xAxis, yAxis, []chart.Series{
		chart.ContinuousSeries{
			Name:    "Actual",
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
		},
		chart.ContinuousSeries{
			Name:    "Ideal (y = x)",
			XValues: ideal,
			YValues: ideal,
			Style: chart.Style{
				StrokeColor:     chart.ColorRed,
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{6, 4},
			},
		},
	}), nil
}

// PNG renders a chart to PNG bytes
func (r *Renderer) PNG(ch *chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.RenderError("chart render failed", err)
	}
	return buf.Bytes(), nil
}

// SaveFile writes a rendered image to path, replacing any existing file
func SaveFile(path string, png []byte) error {
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return errors.RenderError(fmt.Sprintf("failed to write %s", path), err)
	}
	log.Printf("[Chart] wrote %s (%d bytes)", path, len(png))
	return nil
}

func (r *Renderer) newChart(title string, xAxis chart.XAxis, yAxis chart.YAxis, series []chart.Series) *chart.Chart {
	ch := &chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 18},
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch
}

func (r *Renderer) xAxis(name string, xs ...[]float64) chart.XAxis {
	lo, hi, _ := finiteRange(xs...)
	lo, hi = niceAxisBounds(lo, hi)
	return chart.XAxis{
		Name:           name,
		Range:          &chart.ContinuousRange{Min: lo, Max: hi},
		Ticks:          niceTicks(lo, hi, tickCount, numberLabel),
		GridMajorStyle: gridStyle,
	}
}

// finitePoints drops pairs where either coordinate is NaN or infinite
func finitePoints(xs, ys []float64) ([]float64, []float64, int) {
	outX := make([]float64, 0, len(xs))
	outY := make([]float64, 0, len(ys))
	skipped := 0
	for i := range xs {
		if i >= len(ys) {
			break
		}
		if isFinite(xs[i]) && isFinite(ys[i]) {
			outX = append(outX, xs[i])
			outY = append(outY, ys[i])
		} else {
			skipped++
		}
	}
	return outX, outY, skipped
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func minOf(vs []float64) float64 {
	m := math.Inf(1)
	for _, v := range vs {
		m = math.Min(m, v)
	}
	return m
}
