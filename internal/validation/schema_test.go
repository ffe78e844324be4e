package validation

import (
	"testing"

	"clockrate/domain/measurement"
	"clockrate/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawTable(columns []string, rows ...measurement.RawRow) *measurement.RawTable {
	return &measurement.RawTable{Source: "test.csv", Columns: columns, Rows: rows}
}

func TestValidate_ParsesRequiredColumns(t *testing.T) {
	raw := rawTable([]string{"Desired", "Actual", "Note"},
		measurement.RawRow{"Desired": "1", "Actual": "1", "Note": "x"},
		measurement.RawRow{"Desired": "2.5", "Actual": "1e1", "Note": "not numeric"},
	)

	table, err := NewSchemaValidator().Validate(raw)
	require.NoError(t, err)

	assert.Equal(t, "test.csv", table.Source)
	assert.Equal(t, []measurement.Row{{Desired: 1, Actual: 1}, {Desired: 2.5, Actual: 10}}, table.Rows)
}

func TestValidate_MissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{"no actual", []string{"Desired", "Measured"}},
		{"no desired", []string{"Actual"}},
		{"wrong case", []string{"desired", "actual"}},
		{"nothing", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchemaValidator().Validate(rawTable(tt.columns, measurement.RawRow{}))
			require.Error(t, err)
			assert.Equal(t, errors.CodeSchema, errors.GetCode(err))

			colErr, ok := AsColumnError(err)
			require.True(t, ok)
			assert.Equal(t, []string{"Desired", "Actual"}, colErr.Expected)
			assert.Equal(t, tt.columns, colErr.Found)
		})
	}
}

func TestValidate_NonNumericCell(t *testing.T) {
	raw := rawTable([]string{"Desired", "Actual"},
		measurement.RawRow{"Desired": "1", "Actual": "1"},
		measurement.RawRow{"Desired": "2", "Actual": "fast"},
	)

	_, err := NewSchemaValidator().Validate(raw)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNumeric, errors.GetCode(err))
	assert.Contains(t, err.Error(), `row 1, column Actual: "fast" is not a number`)
}

func TestValidate_EmptyCellIsNumericError(t *testing.T) {
	raw := rawTable([]string{"Desired", "Actual"}, measurement.RawRow{"Desired": "", "Actual": "1"})

	_, err := NewSchemaValidator().Validate(raw)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNumeric, errors.GetCode(err))
}

func TestColumnError_Message(t *testing.T) {
	err := &ColumnError{Expected: []string{"Desired", "Actual"}, Found: []string{"x"}}
	assert.Equal(t, `CSV must contain the columns: ["Desired" "Actual"]; found columns: ["x"]`, err.Error())
}
