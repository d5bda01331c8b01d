package charts

import (
	"context"
	"fmt"
	"strings"

	"datachat/internal/dataset"
)

// dataInfo inspects the loaded dataset without producing an artifact.
type dataInfo struct {
	holder *dataset.Holder
}

func (d *dataInfo) Name() string { return "get_data_info" }

func (d *dataInfo) Description() string {
	return "Get detailed information about the loaded dataset including columns, column roles, missing values, and sample data."
}

func (d *dataInfo) Invoke(_ context.Context) Outcome {
	t := d.holder.Table()
	if t == nil {
		return Outcome{Text: noDataMessage}
	}

	var numeric, categorical []string
	for _, c := range t.Columns {
		if c.Role == dataset.RoleNumeric {
			numeric = append(numeric, c.Name)
		} else {
			categorical = append(categorical, c.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Data Information:\n")
	fmt.Fprintf(&b, "  source: %s\n", t.Source)
	fmt.Fprintf(&b, "  shape: %d rows x %d columns\n", t.RowCount(), t.ColCount())
	fmt.Fprintf(&b, "  numeric columns: %s\n", joinOrNone(numeric))
	fmt.Fprintf(&b, "  categorical columns: %s\n", joinOrNone(categorical))
	b.WriteString("  missing values:\n")
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "    %s: %d\n", c.Name, c.Missing)
	}
	b.WriteString(dataset.NewContext(t).String())
	return Outcome{Text: b.String()}
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
