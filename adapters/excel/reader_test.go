package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetdiff/domain/table"
	apperrors "sheetdiff/internal/errors"
	"sheetdiff/ports"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	tbl := table.Table{
		Name:   "Data",
		Schema: table.NewSchema("id", "name", "qty", "active"),
		Records: []table.Record{
			{"id": table.Number(1), "name": table.String("Genotropin"), "qty": table.Number(10.5), "active": table.Bool(true)},
			{"id": table.Number(2), "name": table.String("Norditropin"), "qty": table.Missing(), "active": table.Bool(false)},
		},
	}

	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	require.NoError(t, WriteTables(path, []table.Table{tbl}))
	return path
}

func TestReadTableRoundTrip(t *testing.T) {
	path := writeTestWorkbook(t)

	reader := NewDataReader(path)
	got, err := reader.ReadTable(context.Background(), ports.SheetSelector{})
	require.NoError(t, err)

	assert.Equal(t, "Data", got.Name)
	assert.Equal(t, []string{"id", "name", "qty", "active"}, got.Schema.Names())
	require.Equal(t, 2, got.NumRows())

	first := got.Records[0]
	assert.True(t, first.Get("id").Equal(table.Number(1)))
	assert.True(t, first.Get("name").Equal(table.String("Genotropin")))
	assert.True(t, first.Get("qty").Equal(table.Number(10.5)))
	assert.True(t, first.Get("active").Equal(table.Bool(true)))

	second := got.Records[1]
	assert.True(t, second.Get("qty").IsMissing())

	// Kinds inferred from data
	assert.Equal(t, table.KindNumber, got.Schema.KindOf("id"))
	assert.Equal(t, table.KindString, got.Schema.KindOf("name"))
}

func TestReadTableSheetSelection(t *testing.T) {
	tables := []table.Table{
		{Name: "Overview", Schema: table.NewSchema("a"), Records: []table.Record{{"a": table.Number(1)}}},
		{Name: "Questionnaire - details", Schema: table.NewSchema("b"), Records: []table.Record{{"b": table.Number(2)}}},
	}
	path := filepath.Join(t.TempDir(), "multi.xlsx")
	require.NoError(t, WriteTables(path, tables))

	reader := NewDataReader(path)

	names, err := reader.SheetNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Overview", "Questionnaire - details"}, names)

	// By index
	byIndex, err := reader.ReadTable(context.Background(), ports.SheetSelector{Index: 1})
	require.NoError(t, err)
	assert.Equal(t, "Questionnaire - details", byIndex.Name)

	// By loose name match
	byName, err := reader.ReadTable(context.Background(), ports.SheetSelector{Name: "details"})
	require.NoError(t, err)
	assert.Equal(t, "Questionnaire - details", byName.Name)

	// Unknown name fails
	_, err = reader.ReadTable(context.Background(), ports.SheetSelector{Name: "nope"})
	assert.Error(t, err)

	// Out-of-range index fails
	_, err = reader.ReadTable(context.Background(), ports.SheetSelector{Index: 7})
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	csv := "id,name,qty\n1,A,10\n2,B,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	reader := NewDataReader(path)
	got, err := reader.ReadTable(context.Background(), ports.SheetSelector{})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "qty"}, got.Schema.Names())
	require.Equal(t, 2, got.NumRows())
	assert.True(t, got.Records[0].Get("qty").Equal(table.Number(10)))
	assert.True(t, got.Records[1].Get("qty").IsMissing())

	names, err := reader.SheetNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"data"}, names)
}

func TestReadTableMissingFile(t *testing.T) {
	reader := NewDataReader(filepath.Join(t.TempDir(), "absent.xlsx"))
	_, err := reader.ReadTable(context.Background(), ports.SheetSelector{})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeFileError, appErr.Code)
}

func TestMatchSheetName(t *testing.T) {
	names := []string{"Overview", "Questionnaire - details"}

	assert.Equal(t, "Overview", MatchSheetName(names, "overview"))
	assert.Equal(t, "Questionnaire - details", MatchSheetName(names, "Questionnaire - details"))
	assert.Equal(t, "Questionnaire - details", MatchSheetName(names, "details"))
	assert.Equal(t, "", MatchSheetName(names, "pricing"))
	assert.Equal(t, "", MatchSheetName(names, ""))
}
