// Package table provides a small column-oriented table with per-cell
// masking, the in-memory shape survey query results arrive in.
//
// Cells hold their raw text form as delivered by the archive; numeric
// interpretation happens on demand. An empty cell is masked, mirroring
// how survey services report missing measurements.
package table

import (
	"strconv"
	"strings"

	"github.com/heliobs/magpie/pkg/errors"
)

// Value is a single cell. Valid is false for masked cells, in which
// case Raw is empty and numeric conversion fails.
type Value struct {
	Raw   string
	Valid bool
}

// NewValue returns a cell holding raw. Empty or whitespace-only text
// produces a masked cell.
func NewValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}
	}
	return Value{Raw: trimmed, Valid: true}
}

// Masked returns an explicitly masked cell.
func Masked() Value {
	return Value{}
}

// Float parses the cell as a float64. The second return is false for
// masked or non-numeric cells.
func (v Value) Float() (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.Raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int parses the cell as an int64. The second return is false for
// masked or non-integral cells.
func (v Value) Int() (int64, bool) {
	if !v.Valid {
		return 0, false
	}
	i, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// String returns the raw text, or an empty string for masked cells.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return v.Raw
}

// Column is a named, ordered sequence of cells.
type Column struct {
	name   string
	values []Value
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.values) }

// Value returns the cell at row i, or a masked cell when i is out of range.
func (c *Column) Value(i int) Value {
	if i < 0 || i >= len(c.values) {
		return Value{}
	}
	return c.values[i]
}

// EqualMask returns a row mask marking cells equal to want. When both
// the cell and want parse as numbers the comparison is numeric,
// otherwise it is a trimmed string comparison. Masked cells never match.
func (c *Column) EqualMask(want string) Mask {
	want = strings.TrimSpace(want)
	wantNum, err := strconv.ParseFloat(want, 64)
	wantIsNum := err == nil

	mask := make(Mask, len(c.values))
	for i, v := range c.values {
		if !v.Valid {
			continue
		}
		if wantIsNum {
			if cell, ok := v.Float(); ok {
				mask[i] = cell == wantNum
				continue
			}
		}
		mask[i] = v.Raw == want
	}
	return mask
}

// Mask is a per-row boolean selection mask.
type Mask []bool

// And returns the row-wise conjunction of m and other. Length mismatch
// yields an all-false mask of m's length.
func (m Mask) And(other Mask) Mask {
	out := make(Mask, len(m))
	if len(m) != len(other) {
		return out
	}
	for i := range m {
		out[i] = m[i] && other[i]
	}
	return out
}

// Count returns the number of selected rows.
func (m Mask) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// Table is a named collection of equal-length columns.
type Table struct {
	name   string
	cols   []*Column
	byName map[string]*Column
	nrows  int
}

// New creates an empty table with the given column names.
func New(name string, columns ...string) *Table {
	t := &Table{
		name:   name,
		byName: make(map[string]*Column, len(columns)),
	}
	for _, col := range columns {
		c := &Column{name: col}
		t.cols = append(t.cols, c)
		t.byName[col] = c
	}
	return t
}

// Name returns the table name, typically the archive table key.
func (t *Table) Name() string { return t.name }

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.nrows }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, error) {
	c, ok := t.byName[name]
	if !ok {
		return nil, errors.NewNotFoundError("column", name)
	}
	return c, nil
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// AppendRow appends one row of raw cell text. Empty cells are masked.
// The number of cells must match the number of columns.
func (t *Table) AppendRow(cells ...string) error {
	if len(cells) != len(t.cols) {
		return errors.NewValidationError("row", cells,
			"cell count does not match column count")
	}
	for i, raw := range cells {
		t.cols[i].values = append(t.cols[i].values, NewValue(raw))
	}
	t.nrows++
	return nil
}

// Select returns the rows marked true in mask. A mask of the wrong
// length selects nothing.
func (t *Table) Select(mask Mask) *Selection {
	sel := &Selection{table: t}
	if len(mask) != t.nrows {
		return sel
	}
	for i, keep := range mask {
		if keep {
			sel.rows = append(sel.rows, i)
		}
	}
	return sel
}

// All returns a selection covering every row.
func (t *Table) All() *Selection {
	sel := &Selection{table: t, rows: make([]int, t.nrows)}
	for i := range sel.rows {
		sel.rows[i] = i
	}
	return sel
}

// Selection is an ordered subset of a table's rows.
type Selection struct {
	table *Table
	rows  []int
}

// Len returns the number of selected rows.
func (s *Selection) Len() int { return len(s.rows) }

// Empty reports whether the selection holds no rows.
func (s *Selection) Empty() bool { return len(s.rows) == 0 }

// Table returns the table the selection draws from.
func (s *Selection) Table() *Table { return s.table }

// First returns the named cell of the first selected row. An empty
// selection or a missing column reads as masked, which is exactly how
// downstream validation treats an absent measurement.
func (s *Selection) First(col string) Value {
	return s.Value(col, 0)
}

// Value returns the named cell of the i-th selected row, masked when
// out of range or when the column does not exist.
func (s *Selection) Value(col string, i int) Value {
	if i < 0 || i >= len(s.rows) || s.table == nil {
		return Value{}
	}
	c, ok := s.table.byName[col]
	if !ok {
		return Value{}
	}
	return c.Value(s.rows[i])
}
