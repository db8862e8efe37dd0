package model

import "fmt"

// Table is an ordered set of rows sharing one column header
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewTable creates an empty table with the given header
func NewTable(columns []string) (*Table, error) {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("duplicate column %q", c)}
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Columns returns a copy of the header
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Index returns the position of a column
func (t *Table) Index(column string) (int, bool) {
	i, ok := t.index[column]
	return i, ok
}

// Has reports whether the column exists
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Append adds a row; the value count must match the header
func (t *Table) Append(values ...Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a copy of row i
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// At returns the cell at row i, column col
func (t *Table) At(i, col int) Value {
	return t.rows[i][col]
}

// Get returns the cell at row i in the named column (Missing if absent)
func (t *Table) Get(i int, column string) Value {
	col, ok := t.index[column]
	if !ok {
		return Missing()
	}
	return t.rows[i][col]
}

// Set overwrites the cell at row i, column col
func (t *Table) Set(i, col int, v Value) {
	t.rows[i][col] = v
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	out := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
		rows:    make([][]Value, len(t.rows)),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	for i, row := range t.rows {
		out.rows[i] = make([]Value, len(row))
		copy(out.rows[i], row)
	}
	return out
}

// EnsureColumn returns the index of column, appending it (filled with
// Missing) when absent
func (t *Table) EnsureColumn(column string) int {
	if i, ok := t.index[column]; ok {
		return i
	}
	i := len(t.columns)
	t.columns = append(t.columns, column)
	t.index[column] = i
	for r := range t.rows {
		t.rows[r] = append(t.rows[r], Missing())
	}
	return i
}

// Rename returns a copy with columns renamed per mapping. Keys not in the
// header are ignored. Renames that collide with another column fail.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	renamed := make([]string, len(t.columns))
	for i, c := range t.columns {
		if to, ok := mapping[c]; ok {
			renamed[i] = to
		} else {
			renamed[i] = c
		}
	}

	out, err := NewTable(renamed)
	if err != nil {
		return nil, err
	}
	out.rows = t.Clone().rows
	return out, nil
}
