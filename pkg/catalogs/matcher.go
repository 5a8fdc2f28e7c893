package catalogs

import (
	"fmt"
	"strings"

	"github.com/heliobs/magpie/pkg/table"
)

// Matcher selects the rows of a survey table that belong to the
// cross-matched source. An error means the table cannot be searched
// at all (a missing match column, typically); the caller degrades the
// whole catalog. An empty selection is not an error.
type Matcher interface {
	Select(tbl *table.Table, id string) (*table.Selection, error)

	// String describes the strategy for logs.
	String() string
}

// columnMatcher matches a single identifier column.
type columnMatcher struct {
	column string
}

// MatchColumn returns a Matcher comparing id against one column.
// Comparison is numeric when both sides parse as numbers.
func MatchColumn(column string) Matcher {
	return &columnMatcher{column: column}
}

func (m *columnMatcher) Select(tbl *table.Table, id string) (*table.Selection, error) {
	col, err := tbl.Column(m.column)
	if err != nil {
		return nil, err
	}
	return tbl.Select(col.EqualMask(id)), nil
}

func (m *columnMatcher) String() string {
	return fmt.Sprintf("column(%s)", m.column)
}

// compositeMatcher matches a dash-separated identifier against three
// columns, requiring all parts to agree on the same row.
type compositeMatcher struct {
	columns [3]string
}

// MatchComposite returns a Matcher splitting id on "-" into three
// parts and intersecting the per-column matches. A malformed
// identifier selects nothing.
func MatchComposite(col1, col2, col3 string) Matcher {
	return &compositeMatcher{columns: [3]string{col1, col2, col3}}
}

func (m *compositeMatcher) Select(tbl *table.Table, id string) (*table.Selection, error) {
	parts := strings.Split(id, "-")
	if len(parts) != len(m.columns) {
		return tbl.Select(make(table.Mask, tbl.NumRows())), nil
	}

	var mask table.Mask
	for i, name := range m.columns {
		col, err := tbl.Column(name)
		if err != nil {
			return nil, err
		}
		partMask := col.EqualMask(parts[i])
		if mask == nil {
			mask = partMask
		} else {
			mask = mask.And(partMask)
		}
	}
	return tbl.Select(mask), nil
}

func (m *compositeMatcher) String() string {
	return fmt.Sprintf("composite(%s)", strings.Join(m.columns[:], ","))
}

// templateMatcher interpolates the identifier into a fixed format
// before comparing against a name column.
type templateMatcher struct {
	column string
	format string
}

// MatchTemplate returns a Matcher comparing format (with the id
// substituted for %s) against one column. Used where the archive
// stores decorated designations such as "Gaia DR2 <id>".
func MatchTemplate(column, format string) Matcher {
	return &templateMatcher{column: column, format: format}
}

func (m *templateMatcher) Select(tbl *table.Table, id string) (*table.Selection, error) {
	col, err := tbl.Column(m.column)
	if err != nil {
		return nil, err
	}
	want := fmt.Sprintf(m.format, id)
	return tbl.Select(col.EqualMask(want)), nil
}

func (m *templateMatcher) String() string {
	return fmt.Sprintf("template(%s, %q)", m.column, m.format)
}
