// Package report renders comparison results for humans: a console summary
// banner and a markdown report the dashboard serves as HTML.
package report

import (
	"fmt"
	"io"
	"strings"

	"sheetdiff/domain/diff"
)

// PrintSummary writes the comparison summary banner to w
func PrintSummary(w io.Writer, result *diff.Result) {
	line := strings.Repeat("=", 60)
	s := result.Summary

	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "COMPARISON SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Old file rows:  %d\n", s.TotalOld)
	fmt.Fprintf(w, "New file rows:  %d\n", s.TotalNew)
	fmt.Fprintf(w, "Added rows:     %d\n", s.Added)
	fmt.Fprintf(w, "Removed rows:   %d\n", s.Removed)
	fmt.Fprintf(w, "Changed rows:   %d\n", s.Changed)
	fmt.Fprintf(w, "Unchanged rows: %d\n", s.Unchanged)
	fmt.Fprintln(w, line)

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}
