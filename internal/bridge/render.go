package bridge

import (
	"fmt"
	"strings"

	"datachat/internal/dataset"
)

// snapshotRows caps how much of a table is rendered into a response.
const snapshotRows = 50

// RenderText formats the table as an aligned plain-text block.
func RenderText(t *dataset.Table) string {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c.Name)
	}
	n := min(len(t.Rows), snapshotRows)
	for _, row := range t.Rows[:n] {
		for i := range t.Columns {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells func(i int) string) {
		for i := range t.Columns {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cells(i))
		}
		b.WriteString("\n")
	}

	writeRow(func(i int) string { return t.Columns[i].Name })
	writeRow(func(i int) string { return strings.Repeat("-", widths[i]) })
	for _, row := range t.Rows[:n] {
		row := row
		writeRow(func(i int) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		})
	}
	if len(t.Rows) > n {
		fmt.Fprintf(&b, "... (%d more rows)\n", len(t.Rows)-n)
	}
	return b.String()
}

// RenderMarkdown formats the table as a markdown table for display.
func RenderMarkdown(t *dataset.Table) string {
	var b strings.Builder

	names := make([]string, len(t.Columns))
	seps := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
		seps[i] = "---"
	}
	fmt.Fprintf(&b, "| %s |\n", strings.Join(names, " | "))
	fmt.Fprintf(&b, "| %s |\n", strings.Join(seps, " | "))

	n := min(len(t.Rows), snapshotRows)
	for _, row := range t.Rows[:n] {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
	}
	if len(t.Rows) > n {
		fmt.Fprintf(&b, "\n_%d more rows not shown_\n", len(t.Rows)-n)
	}
	return b.String()
}
