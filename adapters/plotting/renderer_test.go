package plotting

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clockrate/domain/measurement"
	"clockrate/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"
)

func sampleTable() *measurement.Table {
	return measurement.NewTable("t", []float64{1, 2, 3}, []float64{1, 2, 4})
}

func TestDeviationChart_RendersPNG(t *testing.T) {
	r := NewRenderer(640, 400)

	ch, err := r.DeviationChart(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "Clock Rate Error", ch.Title)
	assert.Equal(t, "Desired Clock Rate", ch.XAxis.Name)
	assert.Equal(t, "Error (%)", ch.YAxis.Name)
	require.Len(t, ch.Series, 1)
	assert.Equal(t, "Error", ch.Series[0].GetName())
	require.Len(t, ch.Elements, 1, "legend element")

	require.NotEmpty(t, ch.YAxis.Ticks)
	for _, tick := range ch.YAxis.Ticks {
		assert.True(t, strings.HasSuffix(tick.Label, "%"), tick.Label)
	}

	img, err := r.PNG(ch)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 640, decoded.Bounds().Dx())
	assert.Equal(t, 400, decoded.Bounds().Dy())
}

func TestDeviationChart_SignedSeries(t *testing.T) {
	table := measurement.NewTable("t", []float64{1, 2, 5}, []float64{1, 4, 4})

	ch, err := NewRenderer(640, 400).DeviationChart(table)
	require.NoError(t, err)

	series := ch.Series[0].(chart.ContinuousSeries)
	assert.Equal(t, []float64{1, 2, 5}, series.XValues)
	assert.Equal(t, []float64{0, 50, -25}, series.YValues)
}

func TestDeviationChart_FlatErrorStillRenders(t *testing.T) {
	rates := []float64{100, 200, 300}
	r := NewRenderer(640, 400)

	ch, err := r.DeviationChart(measurement.NewTable("t", rates, rates))
	require.NoError(t, err)
	_, err = r.PNG(ch)
	require.NoError(t, err)
}

func TestDeviationChart_SingleRowRenders(t *testing.T) {
	r := NewRenderer(640, 400)

	ch, err := r.DeviationChart(measurement.NewTable("t", []float64{50}, []float64{49}))
	require.NoError(t, err)
	_, err = r.PNG(ch)
	require.NoError(t, err)
}

func TestDeviationChart_SkipsZeroActual(t *testing.T) {
	table := measurement.NewTable("t", []float64{1, 2, 3}, []float64{0, 2, 4})

	ch, err := NewRenderer(640, 400).DeviationChart(table)
	require.NoError(t, err)
	series := ch.Series[0].(chart.ContinuousSeries)
	assert.Equal(t, []float64{2, 3}, series.XValues)

	_, err = NewRenderer(640, 400).DeviationChart(measurement.NewTable("t", []float64{1}, []float64{0}))
	require.Error(t, err)
	assert.Equal(t, errors.CodeRender, errors.GetCode(err))
}

func TestCompareChart(t *testing.T) {
	r := NewRenderer(640, 400)

	ch, err := r.CompareChart(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "Desired vs Actual Clock Rate", ch.Title)
	require.Len(t, ch.Series, 2)

	ideal := ch.Series[1].(chart.ContinuousSeries)
	assert.Equal(t, "Ideal (y = x)", ideal.Name)
	assert.Equal(t, []float64{0, 4}, ideal.XValues)
	assert.Equal(t, ideal.XValues, ideal.YValues)

	img, err := r.PNG(ch)
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestSaveFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer_results.png")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer"), 0o644))

	require.NoError(t, SaveFile(path, []byte("new")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	err = SaveFile(filepath.Join(t.TempDir(), "missing", "x.png"), []byte("x"))
	assert.Equal(t, errors.CodeRender, errors.GetCode(err))
}

func TestNiceAxisBounds(t *testing.T) {
	lo, hi := niceAxisBounds(0, 25)
	assert.LessOrEqual(t, lo, 0.0)
	assert.GreaterOrEqual(t, hi, 25.0)

	lo, hi = niceAxisBounds(3, 3)
	assert.Less(t, lo, hi)
}

func TestNiceTicks_WithinRange(t *testing.T) {
	ticks := niceTicks(-10, 30, 8, percentLabel)
	require.NotEmpty(t, ticks)
	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick.Value, -10.0)
		assert.LessOrEqual(t, tick.Value, 30.0)
	}
	assert.Equal(t, "-10%", ticks[0].Label)

	assert.Nil(t, niceTicks(math.NaN(), 1, 8, percentLabel))
	assert.Nil(t, niceTicks(0, 1, 1, percentLabel))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, 0, stepDecimals(5))
	assert.Equal(t, 1, stepDecimals(2.5))
	assert.Equal(t, 2, stepDecimals(0.25))
	assert.Equal(t, "12.5%", percentLabel(12.5, 2.5))
	assert.Equal(t, "76000", numberLabel(76000, 10000))
	assert.Equal(t, "25.00%", percentFormatter(25.0))
	assert.Equal(t, "", percentFormatter("x"))
}
