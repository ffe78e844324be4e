package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawTable_HasColumn(t *testing.T) {
	raw := &RawTable{Columns: []string{"Desired", "Actual", "Prescaler"}}

	assert.True(t, raw.HasColumn("Desired"))
	assert.True(t, raw.HasColumn("Prescaler"))
	assert.False(t, raw.HasColumn("desired"), "column match is case-sensitive")
	assert.False(t, raw.HasColumn("Compare"))
}

func TestNewTable_Columns(t *testing.T) {
	table := NewTable("mem", []float64{1, 2, 3}, []float64{1, 2, 4})

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []float64{1, 2, 3}, table.Desired())
	assert.Equal(t, []float64{1, 2, 4}, table.Actual())
	assert.Equal(t, Row{Desired: 3, Actual: 4}, table.Rows[2])
}

func TestNewTable_UnevenColumnsTruncate(t *testing.T) {
	table := NewTable("mem", []float64{1, 2, 3}, []float64{1})
	assert.Equal(t, 1, table.Len())
}

func TestRequiredColumns(t *testing.T) {
	assert.Equal(t, []string{"Desired", "Actual"}, RequiredColumns())
}
