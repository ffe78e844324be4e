package app

import (
	"fmt"
	"io"
	"strconv"

	"clockrate/internal/analysis"
)

// WriteReport prints the absolute and percentage deviation sections
func WriteReport(w io.Writer, r *analysis.DeviationReport) {
	fmt.Fprintln(w, "Absolute Values")
	fmt.Fprintf(w, "  Max:  %.4f\n", r.Absolute.Max)
	fmt.Fprintf(w, "  Mean: %.4f\n", r.Absolute.Mean)
	fmt.Fprintf(w, "  Std:  %.4f\n", r.Absolute.Std)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Percentages")
	fmt.Fprintf(w, "  Max:  %.4f%%\n", r.Relative.Max*100)
	fmt.Fprintf(w, "  Mean: %.4f%%\n", r.Relative.Mean*100)
	fmt.Fprintf(w, "  Std:  %.4f%%\n", r.Relative.Std*100)
	fmt.Fprintf(w, "  Max error at row %d: Actual=%s, Desired=%s\n",
		r.MaxIndex, formatRate(r.MaxActual), formatRate(r.MaxDesired))

	if r.ZeroActual > 0 {
		fmt.Fprintf(w, "  Warning: %d rows have Actual == 0; their percentage error is undefined\n", r.ZeroActual)
	}
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
