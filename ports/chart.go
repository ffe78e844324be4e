package ports

import (
	"clockrate/domain/measurement"
)

// TableReader loads a measurement file before schema validation
type TableReader interface {
	ReadData() (*measurement.RawTable, error)
}

// ChartViewer presents a rendered PNG chart to the user.
// Show blocks until the user dismisses the chart.
type ChartViewer interface {
	Show(title string, png []byte) error
}
