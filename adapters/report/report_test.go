package report

import (
	"bytes"
	"strings"
	"testing"

	"sheetdiff/domain/diff"
	"sheetdiff/domain/table"
)

func sampleResult() *diff.Result {
	pct := 20.0
	return &diff.Result{
		Columns: []string{"id", "qty"},
		Added:   []table.Record{{"id": table.Number(2), "qty": table.Number(5)}},
		Changed: []diff.ChangedRow{
			{
				Key: "1",
				Old: table.Record{"id": table.Number(1), "qty": table.Number(10)},
				New: table.Record{"id": table.Number(1), "qty": table.Number(12)},
				Delta: map[string]diff.FieldDelta{
					"qty": {Old: table.Number(10), New: table.Number(12), PercentChange: &pct},
				},
			},
		},
		Summary:  diff.Summary{Added: 1, Changed: 1, TotalOld: 1, TotalNew: 2},
		Warnings: []diff.SchemaWarning{{Column: "legacy", MissingIn: diff.SideNew}},
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleResult())
	out := buf.String()

	for _, want := range []string{
		"COMPARISON SUMMARY",
		"Old file rows:  1",
		"New file rows:  2",
		"Added rows:     1",
		"Changed rows:   1",
		`column "legacy" missing in new table`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := string(RenderMarkdown("old.xlsx vs new.xlsx", sampleResult()))

	for _, want := range []string{
		"# Comparison report: old.xlsx vs new.xlsx",
		"| Added | 1 |",
		"## Schema warnings",
		"## Changed rows",
		"| 1 | qty | 10 | 12 | +20.0% |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
