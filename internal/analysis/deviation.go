package analysis

import (
	"math"

	"clockrate/domain/measurement"
	"clockrate/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Summary holds the aggregates reported for one deviation sequence
type Summary struct {
	Max  float64
	Mean float64
	Std  float64 // population standard deviation
}

// DeviationReport is the output of the statistics engine
type DeviationReport struct {
	AbsDelta []float64 // |Actual - Desired|
	RelDelta []float64 // AbsDelta / Actual

	Absolute Summary
	Relative Summary

	// Row with the largest relative deviation, first occurrence on ties
	MaxIndex   int
	MaxActual  float64
	MaxDesired float64

	// Rows with Actual == 0; their RelDelta is +Inf or NaN
	ZeroActual int
}

// DeviationAnalyzer computes deviation statistics between desired and actual rates
type DeviationAnalyzer struct{}

// NewDeviationAnalyzer creates a new deviation analyzer
func NewDeviationAnalyzer() *DeviationAnalyzer {
	return &DeviationAnalyzer{}
}

// Analyze computes absolute and relative deviation aggregates for a validated table
func (da *DeviationAnalyzer) Analyze(table *measurement.Table) (*DeviationReport, error) {
	if table == nil || table.Len() == 0 {
		return nil, errors.NumericError("measurement table has no rows")
	}

	report := &DeviationReport{
		AbsDelta: make([]float64, table.Len()),
		RelDelta: make([]float64, table.Len()),
	}
	for i, row := range table.Rows {
		abs := math.Abs(row.Actual - row.Desired)
		report.AbsDelta[i] = abs
		report.RelDelta[i] = abs / row.Actual
		if row.Actual == 0 {
			report.ZeroActual++
		}
	}

	var err error
	if report.Absolute, err = summarize(report.AbsDelta); err != nil {
		return nil, errors.Wrap(err, "absolute deviation")
	}
	if report.Relative, err = summarize(report.RelDelta); err != nil {
		return nil, errors.Wrap(err, "relative deviation")
	}

	report.MaxIndex = floats.MaxIdx(report.RelDelta)
	report.MaxActual = table.Rows[report.MaxIndex].Actual
	report.MaxDesired = table.Rows[report.MaxIndex].Desired

	return report, nil
}

func summarize(data []float64) (Summary, error) {
	var s Summary
	var err error

	if s.Max, err = stats.Max(data); err != nil {
		return s, errors.WithCode(errors.CodeNumeric, err)
	}
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, errors.WithCode(errors.CodeNumeric, err)
	}
	if s.Std, err = stats.StandardDeviationPopulation(data); err != nil {
		return s, errors.WithCode(errors.CodeNumeric, err)
	}
	return s, nil
}

// SignedPercentError returns (Actual - Desired) / Actual * 100 for every row
func SignedPercentError(table *measurement.Table) []float64 {
	out := make([]float64, table.Len())
	for i, row := range table.Rows {
		out[i] = (row.Actual - row.Desired) / row.Actual * 100
	}
	return out
}
