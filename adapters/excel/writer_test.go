package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheetdiff/domain/diff"
	"sheetdiff/domain/table"
)

func TestWriteReportSheets(t *testing.T) {
	pct := 20.0
	result := &diff.Result{
		Columns: []string{"id", "qty"},
		Added: []table.Record{
			{"id": table.Number(2), "qty": table.Number(5)},
		},
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
		Summary: diff.Summary{Added: 1, Changed: 1, TotalOld: 1, TotalNew: 2},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	writer := NewResultWriter()
	require.NoError(t, writer.WriteReport(context.Background(), result, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Added", "Removed", "Changed", "Unchanged"}, f.GetSheetList())

	addedRows, err := f.GetRows("Added")
	require.NoError(t, err)
	require.Len(t, addedRows, 2)
	assert.Equal(t, []string{"id", "qty"}, addedRows[0])
	assert.Equal(t, "2", addedRows[1][0])

	changedRows, err := f.GetRows("Changed")
	require.NoError(t, err)
	require.Len(t, changedRows, 2)
	assert.Equal(t, []string{"id_old", "id_new", "qty_old", "qty_new"}, changedRows[0])
	assert.Equal(t, []string{"1", "1", "10", "12"}, changedRows[1])

	// Empty categories still get a header row
	removedRows, err := f.GetRows("Removed")
	require.NoError(t, err)
	require.Len(t, removedRows, 1)
	assert.Equal(t, []string{"id", "qty"}, removedRows[0])
}
