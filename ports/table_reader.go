package ports

import (
	"context"

	"sheetdiff/domain/table"
)

// SheetSelector picks a sheet by name or 0-based index. A non-empty Name
// wins; otherwise Index is used. The zero value selects the first sheet.
type SheetSelector struct {
	Name  string
	Index int
}

// TableReaderPort loads a tabular snapshot from an external source
// (spreadsheet file, CSV, database) into the in-memory table model.
type TableReaderPort interface {
	// ReadTable loads the selected sheet as a typed table
	ReadTable(ctx context.Context, sel SheetSelector) (*table.Table, error)

	// SheetNames lists the sheets the source exposes, in file order
	SheetNames(ctx context.Context) ([]string, error)
}
