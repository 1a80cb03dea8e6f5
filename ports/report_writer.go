package ports

import (
	"context"

	"sheetdiff/domain/diff"
)

// ReportWriterPort serializes a comparison result to an external artifact
// (multi-sheet workbook, markdown file). The comparator itself never
// serializes; writers consume its output contract.
type ReportWriterPort interface {
	WriteReport(ctx context.Context, result *diff.Result, path string) error
}
