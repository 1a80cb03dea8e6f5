package report

import (
	"fmt"
	"sort"
	"strings"

	"sheetdiff/domain/diff"
)

// Cap on changed rows listed in the markdown report. The exported workbook
// carries the full detail; the report is a readable digest.
const maxChangedRows = 50

// RenderMarkdown produces a markdown digest of a comparison: the summary
// table, schema warnings and the field-level deltas of changed rows.
func RenderMarkdown(label string, result *diff.Result) []byte {
	var b strings.Builder
	s := result.Summary

	fmt.Fprintf(&b, "# Comparison report: %s\n\n", label)

	b.WriteString("| Category | Rows |\n|---|---|\n")
	fmt.Fprintf(&b, "| Old total | %d |\n", s.TotalOld)
	fmt.Fprintf(&b, "| New total | %d |\n", s.TotalNew)
	fmt.Fprintf(&b, "| Added | %d |\n", s.Added)
	fmt.Fprintf(&b, "| Removed | %d |\n", s.Removed)
	fmt.Fprintf(&b, "| Changed | %d |\n", s.Changed)
	fmt.Fprintf(&b, "| Unchanged | %d |\n\n", s.Unchanged)

	if len(result.Warnings) > 0 {
		b.WriteString("## Schema warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if len(result.Changed) > 0 {
		b.WriteString("## Changed rows\n\n")
		b.WriteString("| Key | Column | Old | New | Change |\n|---|---|---|---|---|\n")
		shown := 0
		for _, row := range result.Changed {
			if shown >= maxChangedRows {
				fmt.Fprintf(&b, "\n_%d more changed rows omitted; see the exported workbook._\n", len(result.Changed)-shown)
				break
			}
			for _, col := range sortedColumns(row.Delta) {
				fd := row.Delta[col]
				pct := ""
				if fd.PercentChange != nil {
					pct = fmt.Sprintf("%+.1f%%", *fd.PercentChange)
				}
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
					row.Key, col, displayOrBlank(fd.Old.Display()), displayOrBlank(fd.New.Display()), pct)
			}
			shown++
		}
	}

	return []byte(b.String())
}

func sortedColumns(delta map[string]diff.FieldDelta) []string {
	cols := make([]string, 0, len(delta))
	for col := range delta {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func displayOrBlank(s string) string {
	if s == "" {
		return "(missing)"
	}
	return s
}
