package plotting

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// 5% margin on both sides
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n tick marks between [min, max] using 1, 2, 2.5, 5 steps.
func niceTicks(min, max float64, n int, label func(v, step float64) string) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}

	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	ticks := []chart.Tick{}
	eps := bestStep * 1e-9
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > end+eps || v > max+eps || len(ticks) > n+2 {
			break
		}
		if v < min-eps {
			continue
		}
		if math.Abs(v) < eps {
			v = 0
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: label(v, bestStep)})
	}
	return ticks
}

// stepDecimals is the number of fraction digits needed to print multiples of step exactly
func stepDecimals(step float64) int {
	d := 0
	for s := step; d < 8 && math.Abs(s-math.Round(s)) > 1e-9; d++ {
		s *= 10
	}
	return d
}

func percentLabel(v, step float64) string {
	return fmt.Sprintf("%.*f%%", stepDecimals(step), v)
}

func numberLabel(v, step float64) string {
	return fmt.Sprintf("%.*f", stepDecimals(step), v)
}

// percentFormatter labels y values that are already scaled to percent
func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f%%", f)
	}
	return ""
}

// finiteRange returns the min and max of the finite values, ok is false when there are none
func finiteRange(values ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}
