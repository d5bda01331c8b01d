package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const salesCSV = `Month,Region,Revenue,Cost,Date
Jan,North,1000,400,2024-01-31
Feb,North,1500,550,2024-02-29
Mar,South,900,380,2024-03-31
Apr,South,1200,470,2024-04-30
May,East,800,300,2024-05-31
Jun,West,1700,600,2024-06-30
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadShapeAndRoles(t *testing.T) {
	tab, err := Load(writeFile(t, "sales.csv", salesCSV), "sales.csv")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if tab.RowCount() != 6 || tab.ColCount() != 5 {
		t.Fatalf("unexpected shape: %dx%d", tab.RowCount(), tab.ColCount())
	}

	want := map[string]Role{
		"Month":   RoleCategorical,
		"Region":  RoleCategorical,
		"Revenue": RoleNumeric,
		"Cost":    RoleNumeric,
		"Date":    RoleCategorical,
	}
	for _, c := range tab.Columns {
		if c.Role != want[c.Name] {
			t.Fatalf("column %s: role %s, want %s", c.Name, c.Role, want[c.Name])
		}
	}

	if i, ok := tab.FirstCategorical(); !ok || i != 0 {
		t.Fatalf("first categorical = %d, %v", i, ok)
	}
	if i, ok := tab.FirstNumeric(); !ok || i != 2 {
		t.Fatalf("first numeric = %d, %v", i, ok)
	}
	if i, ok := tab.FirstTemporal(); !ok || i != 4 {
		t.Fatalf("first temporal = %d, %v", i, ok)
	}
}

func TestLoadCurrencyValues(t *testing.T) {
	csv := "Item,Price\nWidget,\"$1,200.50\"\nGadget,$900\n"
	tab, err := Load(writeFile(t, "prices.csv", csv), "prices.csv")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if tab.Columns[1].Role != RoleNumeric {
		t.Fatalf("currency column classified as %s", tab.Columns[1].Role)
	}
	v, ok := tab.Float(0, 1)
	if !ok || v != 1200.50 {
		t.Fatalf("Float(0,1) = %v, %v", v, ok)
	}
}

func TestLoadMissingValueCounts(t *testing.T) {
	csv := "A,B\n1,x\nN/A,y\n,z\n4,null\n"
	tab, err := Load(writeFile(t, "gaps.csv", csv), "gaps.csv")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if tab.Columns[0].Missing != 2 {
		t.Fatalf("column A missing = %d, want 2", tab.Columns[0].Missing)
	}
	if tab.Columns[1].Missing != 1 {
		t.Fatalf("column B missing = %d, want 1", tab.Columns[1].Missing)
	}
	// Two parseable values out of two present is still numeric.
	if tab.Columns[0].Role != RoleNumeric {
		t.Fatalf("column A role = %s", tab.Columns[0].Role)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), "absent.csv")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "data.txt", "hello"), "data.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestHolderLoadIsTransactional(t *testing.T) {
	h := NewHolder()
	if _, err := h.Summary(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded on empty holder, got %v", err)
	}

	if _, err := h.Load(writeFile(t, "sales.csv", salesCSV), "sales.csv"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	summary, err := h.Summary()
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.RowsN != 6 || summary.ColsN != 5 {
		t.Fatalf("unexpected summary shape: %dx%d", summary.RowsN, summary.ColsN)
	}

	// A failed load must leave the previous table untouched.
	if _, err := h.Load(writeFile(t, "bad.txt", "x"), "bad.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	summary, err = h.Summary()
	if err != nil {
		t.Fatalf("summary after failed load: %v", err)
	}
	if summary.Source != "sales.csv" || summary.RowsN != 6 {
		t.Fatalf("failed load replaced the active table: %+v", summary)
	}

	// A successful load atomically replaces it.
	if _, err := h.Load(writeFile(t, "tiny.csv", "X,Y\na,1\n"), "tiny.csv"); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	summary, _ = h.Summary()
	if summary.Source != "tiny.csv" || summary.RowsN != 1 || summary.ColsN != 2 {
		t.Fatalf("reload did not replace the table: %+v", summary)
	}
}

func TestContextSample(t *testing.T) {
	tab, err := Load(writeFile(t, "sales.csv", salesCSV), "sales.csv")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	ctx := NewContext(tab)
	if len(ctx.Sample) != 3 {
		t.Fatalf("sample rows = %d, want 3", len(ctx.Sample))
	}
	text := ctx.String()
	for _, want := range []string{"sales.csv", "6 rows x 5 columns", "Revenue"} {
		if !strings.Contains(text, want) {
			t.Fatalf("context text missing %q:\n%s", want, text)
		}
	}
}
