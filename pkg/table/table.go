// Package table provides the core in-memory tabular data model for the
// scrub cleaning pipeline. A Table is an ordered collection of string-valued
// rows over a fixed, named, ordered column set. Tables are value types owned
// by one pipeline stage at a time; stages hand a table forward rather than
// sharing it.
package table

import (
	"fmt"
)

// Table holds an ordered set of rows over a fixed column schema.
// Every row has a cell (possibly empty) for every column.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given column schema.
// Duplicate column names are rejected with a SchemaError.
func New(columns []string) (*Table, error) {
	idx := make(map[string]int, len(columns))
	cols := make([]string, len(columns))
	for i, c := range columns {
		if _, ok := idx[c]; ok {
			return nil, &SchemaError{Column: c, Reason: "duplicate column"}
		}
		idx[c] = i
		cols[i] = c
	}
	return &Table{columns: cols, index: idx, rows: nil}, nil
}

// MustNew is New for statically known schemas; it panics on a bad schema.
func MustNew(columns []string) *Table {
	t, err := New(columns)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns the column names in schema order.
// The returned slice must not be modified.
func (t *Table) Columns() []string {
	return t.columns
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether name is part of the schema.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// HasColumns reports whether every name is part of the schema.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// RequireColumns returns a SchemaError naming the first missing column.
func (t *Table) RequireColumns(names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return &SchemaError{Column: n, Reason: "column not found"}
		}
	}
	return nil
}

// Append adds a row. The row must have exactly one cell per column.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.columns) {
		return &SchemaError{Reason: fmt.Sprintf("row has %d cells, schema has %d columns", len(row), len(t.columns))}
	}
	cells := make([]string, len(row))
	copy(cells, row)
	t.rows = append(t.rows, cells)
	return nil
}

// AppendMap adds a row given as a column→value mapping. Columns absent from
// the mapping default to empty; keys outside the schema are a SchemaError.
func (t *Table) AppendMap(row map[string]string) error {
	cells := make([]string, len(t.columns))
	for col, val := range row {
		i, ok := t.index[col]
		if !ok {
			return &SchemaError{Column: col, Reason: "column not found"}
		}
		cells[i] = val
	}
	t.rows = append(t.rows, cells)
	return nil
}

// Value returns the cell at (row, column).
func (t *Table) Value(row int, column string) (string, error) {
	i, ok := t.index[column]
	if !ok {
		return "", &SchemaError{Column: column, Reason: "column not found"}
	}
	if row < 0 || row >= len(t.rows) {
		return "", fmt.Errorf("row %d out of range [0,%d)", row, len(t.rows))
	}
	return t.rows[row][i], nil
}

// Set overwrites the cell at (row, column).
func (t *Table) Set(row int, column, value string) error {
	i, ok := t.index[column]
	if !ok {
		return &SchemaError{Column: column, Reason: "column not found"}
	}
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d out of range [0,%d)", row, len(t.rows))
	}
	t.rows[row][i] = value
	return nil
}

// AddColumn appends a new column with the given default value in every
// existing row. Adding a column that already exists is a no-op.
func (t *Table) AddColumn(name, defaultValue string) {
	if t.HasColumn(name) {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], defaultValue)
	}
}

// Row returns a read view over row i. The view stays valid as long as the
// table does and sees later cell updates.
func (t *Table) Row(i int) Row {
	return Row{t: t, pos: i}
}

// AppendRowFrom copies row i of src into t. Columns of t missing from src
// are filled with empty; extra src columns are dropped.
func (t *Table) AppendRowFrom(src *Table, i int) {
	cells := make([]string, len(t.columns))
	for j, col := range t.columns {
		if k, ok := src.index[col]; ok {
			cells[j] = src.rows[i][k]
		}
	}
	t.rows = append(t.rows, cells)
}

// Clone returns a deep copy sharing nothing with t.
func (t *Table) Clone() *Table {
	c := MustNew(t.columns)
	for _, r := range t.rows {
		cells := make([]string, len(r))
		copy(cells, r)
		c.rows = append(c.rows, cells)
	}
	return c
}

// Reorder places the given columns first (or last), keeping the remaining
// columns in their current relative order. Unknown names are a SchemaError.
func (t *Table) Reorder(columns []string, atEnd bool) error {
	if err := t.RequireColumns(columns...); err != nil {
		return err
	}
	chosen := make(map[string]bool, len(columns))
	for _, c := range columns {
		chosen[c] = true
	}
	var rest []string
	for _, c := range t.columns {
		if !chosen[c] {
			rest = append(rest, c)
		}
	}
	var order []string
	if atEnd {
		order = append(rest, columns...)
	} else {
		order = append(append([]string{}, columns...), rest...)
	}

	perm := make([]int, len(order))
	for i, c := range order {
		perm[i] = t.index[c]
	}
	for i, r := range t.rows {
		cells := make([]string, len(perm))
		for j, k := range perm {
			cells[j] = r[k]
		}
		t.rows[i] = cells
	}
	t.columns = order
	idx := make(map[string]int, len(order))
	for i, c := range order {
		idx[c] = i
	}
	t.index = idx
	return nil
}

// Row is a positioned read view into a table row.
type Row struct {
	t   *Table
	pos int
}

// Position returns the row's index in its owning table.
func (r Row) Position() int {
	return r.pos
}

// Get returns the row's value for a column.
func (r Row) Get(column string) (string, error) {
	return r.t.Value(r.pos, column)
}

// GetDefault returns the row's value for a column, or "" when the column is
// not part of the schema. Used where a missing field is a degenerate value
// rather than an error.
func (r Row) GetDefault(column string) string {
	v, err := r.t.Value(r.pos, column)
	if err != nil {
		return ""
	}
	return v
}
