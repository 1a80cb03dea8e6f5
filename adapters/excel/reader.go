package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"sheetdiff/domain/table"
	apperrors "sheetdiff/internal/errors"
	"sheetdiff/ports"
)

// DataReader loads Excel and CSV files into typed tables
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable loads the selected sheet as a typed table. CSV files have a
// single implicit sheet; any selector is accepted for them.
func (r *DataReader) ReadTable(ctx context.Context, sel ports.SheetSelector) (*table.Table, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, apperrors.FileError(r.filePath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel(sel)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// SheetNames lists the sheets in file order. CSV files report one sheet
// named after the file.
func (r *DataReader) SheetNames(ctx context.Context) ([]string, error) {
	if r.fileType == "csv" {
		base := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
		return []string{base}, nil
	}
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func (r *DataReader) readExcel(sel ports.SheetSelector) (*table.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", r.filePath)
	}

	sheetName, err := resolveSheet(sheets, sel)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("sheet %q has no header row", sheetName)
	}

	return r.buildTable(sheetName, rows)
}

func (r *DataReader) readCSV() (*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("CSV file has no header row")
	}

	base := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	return r.buildTable(base, rows)
}

// resolveSheet applies the selector: name match first, then index
func resolveSheet(sheets []string, sel ports.SheetSelector) (string, error) {
	if sel.Name != "" {
		if name := MatchSheetName(sheets, sel.Name); name != "" {
			return name, nil
		}
		return "", fmt.Errorf("sheet %q not found (have %s)", sel.Name, strings.Join(sheets, ", "))
	}
	if sel.Index < 0 || sel.Index >= len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", sel.Index, len(sheets))
	}
	return sheets[sel.Index], nil
}

// buildTable converts raw string rows into a typed table. The first row is
// the header; headers are trimmed, cells are coerced and column kinds
// inferred from the data.
func (r *DataReader) buildTable(name string, rows [][]string) (*table.Table, error) {
	headerRow := rows[0]
	headers := make([]string, 0, len(headerRow))
	colIdx := make([]int, 0, len(headerRow)) // source column per header, unnamed columns skipped
	for j, header := range headerRow {
		trimmed := strings.TrimSpace(header)
		if trimmed == "" {
			continue
		}
		headers = append(headers, trimmed)
		colIdx = append(colIdx, j)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("sheet %q has an empty header row", name)
	}

	t := &table.Table{Name: name, Schema: table.NewSchema(headers...)}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rec := make(table.Record, len(headers))
		for h, header := range headers {
			if colIdx[h] < len(row) {
				rec[header] = table.Parse(row[colIdx[h]])
			} else {
				rec[header] = table.Missing()
			}
		}
		t.Records = append(t.Records, rec)
	}
	t.InferKinds()
	return t, nil
}

// Ensure DataReader implements TableReaderPort
var _ ports.TableReaderPort = (*DataReader)(nil)
