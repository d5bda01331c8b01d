package dataset

import (
	"strconv"
	"strings"
)

// Role classifies a column for the chart heuristics.
type Role string

const (
	RoleNumeric     Role = "numeric"
	RoleCategorical Role = "categorical"
)

type Column struct {
	Name     string
	Role     Role
	Temporal bool // name carries a date/time token
	Missing  int  // empty or null-marker cells
}

// Table is the single active rectangular dataset. Cells are kept as the
// raw strings read from the source file; numeric access parses on demand.
type Table struct {
	Source  string // declared file name
	Columns []Column
	Rows    [][]string
}

func (t *Table) RowCount() int { return len(t.Rows) }
func (t *Table) ColCount() int { return len(t.Columns) }

// Float parses the cell at (row, col). The second return is false for
// missing or non-numeric cells.
func (t *Table) Float(row, col int) (float64, bool) {
	if row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return 0, false
	}
	return parseNumeric(t.Rows[row][col])
}

func (t *Table) Cell(row, col int) string {
	if row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// FirstCategorical returns the index of the first categorical column in
// declared order.
func (t *Table) FirstCategorical() (int, bool) {
	for i, c := range t.Columns {
		if c.Role == RoleCategorical {
			return i, true
		}
	}
	return 0, false
}

func (t *Table) FirstNumeric() (int, bool) {
	for i, c := range t.Columns {
		if c.Role == RoleNumeric {
			return i, true
		}
	}
	return 0, false
}

// FirstTemporal returns the first column whose name matches the
// date/time naming heuristic, regardless of its inferred role.
func (t *Table) FirstTemporal() (int, bool) {
	for i, c := range t.Columns {
		if c.Temporal {
			return i, true
		}
	}
	return 0, false
}

func (t *Table) NumericColumns() []int {
	var out []int
	for i, c := range t.Columns {
		if c.Role == RoleNumeric {
			out = append(out, i)
		}
	}
	return out
}

// parseNumeric accepts currency-prefixed and comma-grouped values,
// e.g. "$1,234.56".
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isNullMarker(s) {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isNullMarker(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "null", "NULL", "N/A", "n/a":
		return true
	}
	return false
}
