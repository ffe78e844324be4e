package measurement

// Required column names, matched exactly and case-sensitively.
const (
	ColumnDesired = "Desired"
	ColumnActual  = "Actual"
)

// RequiredColumns lists the columns every measurement file must carry, in report order
func RequiredColumns() []string {
	return []string{ColumnDesired, ColumnActual}
}

// RawRow is one data row keyed by header name
type RawRow map[string]string

// RawTable is a loaded file before schema validation
type RawTable struct {
	Source  string   // path the table was read from
	Columns []string // headers in file order
	Rows    []RawRow
}

// HasColumn reports whether the header contains name exactly
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Row is a single Desired/Actual pair
type Row struct {
	Desired float64
	Actual  float64
}

// Table is the validated measurement table, row-aligned by position
type Table struct {
	Source string
	Rows   []Row
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Desired returns the Desired column as a new slice
func (t *Table) Desired() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Desired
	}
	return out
}

// Actual returns the Actual column as a new slice
func (t *Table) Actual() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Actual
	}
	return out
}

// NewTable builds a table from parallel columns; the shorter length wins
func NewTable(source string, desired, actual []float64) *Table {
	n := len(desired)
	if len(actual) < n {
		n = len(actual)
	}
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{Desired: desired[i], Actual: actual[i]}
	}
	return &Table{Source: source, Rows: rows}
}
