package validation

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"clockrate/domain/measurement"
	"clockrate/internal/errors"
)

// ColumnError describes a header that lacks one of the required columns
type ColumnError struct {
	Expected []string
	Found    []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("CSV must contain the columns: %q; found columns: %q", e.Expected, e.Found)
}

// AsColumnError extracts a ColumnError from an error chain
func AsColumnError(err error) (*ColumnError, bool) {
	var colErr *ColumnError
	if stderrors.As(err, &colErr) {
		return colErr, true
	}
	return nil, false
}

// SchemaValidator checks a raw table's header and converts the measurement columns
type SchemaValidator struct {
	required []string
}

// NewSchemaValidator creates a validator for the Desired and Actual columns
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{required: measurement.RequiredColumns()}
}

// CheckColumns fails with a SCHEMA_ERROR wrapping a ColumnError when a required column is absent
func (v *SchemaValidator) CheckColumns(raw *measurement.RawTable) error {
	for _, col := range v.required {
		if !raw.HasColumn(col) {
			found := make([]string, len(raw.Columns))
			copy(found, raw.Columns)
			return &errors.AppError{
				Code:    errors.CodeSchema,
				Message: "missing required columns",
				Cause:   &ColumnError{Expected: v.required, Found: found},
			}
		}
	}
	return nil
}

// Validate checks the header then parses Desired and Actual as float64.
// Other columns are never parsed.
func (v *SchemaValidator) Validate(raw *measurement.RawTable) (*measurement.Table, error) {
	if err := v.CheckColumns(raw); err != nil {
		return nil, err
	}

	rows := make([]measurement.Row, len(raw.Rows))
	for i, r := range raw.Rows {
		desired, err := parseCell(r, measurement.ColumnDesired, i)
		if err != nil {
			return nil, err
		}
		actual, err := parseCell(r, measurement.ColumnActual, i)
		if err != nil {
			return nil, err
		}
		rows[i] = measurement.Row{Desired: desired, Actual: actual}
	}

	return &measurement.Table{Source: raw.Source, Rows: rows}, nil
}

// parseCell reports rows 0-based, matching the row index used by the statistics report
func parseCell(r measurement.RawRow, column string, row int) (float64, error) {
	cell := r[column]
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, errors.NumericError(fmt.Sprintf("row %d, column %s: %q is not a number", row, column, cell))
	}
	return value, nil
}
