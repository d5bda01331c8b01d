package dataset

import (
	"fmt"
	"strings"
)

const sampleRows = 3

// Context is the derived, read-only summary of the active table. It is
// recomputed in full from the table; it never updates partially.
type Context struct {
	Source  string
	RowsN   int
	ColsN   int
	Columns []Column
	Sample  [][]string
}

func NewContext(t *Table) Context {
	ctx := Context{
		Source:  t.Source,
		RowsN:   t.RowCount(),
		ColsN:   t.ColCount(),
		Columns: append([]Column(nil), t.Columns...),
	}
	n := sampleRows
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	for _, row := range t.Rows[:n] {
		ctx.Sample = append(ctx.Sample, append([]string(nil), row...))
	}
	return ctx
}

// String renders the context as structured text for prompts and the
// info capability.
func (c Context) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset: %s\n", c.Source)
	fmt.Fprintf(&b, "Shape: %d rows x %d columns\n", c.RowsN, c.ColsN)
	b.WriteString("Columns:\n")
	for _, col := range c.Columns {
		note := ""
		if col.Temporal {
			note = ", temporal name"
		}
		fmt.Fprintf(&b, "  - %s (%s%s, %d missing)\n", col.Name, col.Role, note, col.Missing)
	}
	if len(c.Sample) > 0 {
		b.WriteString("Sample rows:\n")
		for _, row := range c.Sample {
			fmt.Fprintf(&b, "  %s\n", strings.Join(row, " | "))
		}
	}
	return b.String()
}
