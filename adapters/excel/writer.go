package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sheetdiff/domain/diff"
	"sheetdiff/domain/table"
	"sheetdiff/ports"
)

// ResultWriter exports a comparison result as a multi-sheet workbook with
// Added, Removed, Changed and Unchanged sheets
type ResultWriter struct{}

// NewResultWriter creates a result writer
func NewResultWriter() *ResultWriter {
	return &ResultWriter{}
}

// WriteReport writes the four category sheets to path. The Changed sheet
// carries _old/_new column pairs so both sides of every delta are visible.
func (w *ResultWriter) WriteReport(ctx context.Context, result *diff.Result, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, category := range diff.Categories() {
		sheet := category.String()
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		var err error
		switch category {
		case diff.CategoryAdded:
			err = writeRecordSheet(f, sheet, result.Columns, result.Added)
		case diff.CategoryRemoved:
			err = writeRecordSheet(f, sheet, result.Columns, result.Removed)
		case diff.CategoryChanged:
			err = writeChangedSheet(f, sheet, result.Columns, result.Changed)
		case diff.CategoryUnchanged:
			err = writeRecordSheet(f, sheet, result.Columns, result.Unchanged)
		}
		if err != nil {
			return err
		}
	}

	// Drop the default sheet so the workbook holds exactly the four categories
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRecordSheet(f *excelize.File, sheet string, columns []string, records []table.Record) error {
	if err := writeHeader(f, sheet, columns); err != nil {
		return err
	}
	for i, rec := range records {
		for j, col := range columns {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := setCell(f, sheet, cell, rec.Get(col)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeChangedSheet(f *excelize.File, sheet string, columns []string, changed []diff.ChangedRow) error {
	headers := make([]string, 0, 2*len(columns))
	for _, col := range columns {
		headers = append(headers, col+"_old", col+"_new")
	}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}

	for i, row := range changed {
		for j, col := range columns {
			oldCell, err := excelize.CoordinatesToCellName(2*j+1, i+2)
			if err != nil {
				return err
			}
			if err := setCell(f, sheet, oldCell, row.Old.Get(col)); err != nil {
				return err
			}
			newCell, err := excelize.CoordinatesToCellName(2*j+2, i+2)
			if err != nil {
				return err
			}
			if err := setCell(f, sheet, newCell, row.New.Get(col)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for j, header := range headers {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	return nil
}

// setCell writes a typed value preserving its kind in the workbook
func setCell(f *excelize.File, sheet, cell string, v table.Value) error {
	switch v.Kind() {
	case table.KindMissing:
		return nil
	case table.KindNumber:
		num, _ := v.Float()
		return f.SetCellValue(sheet, cell, num)
	default:
		return f.SetCellValue(sheet, cell, v.Display())
	}
}

// WriteTables writes one sheet per table to path, headers first. Used by
// the sample-data generator.
func WriteTables(path string, tables []table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, t := range tables {
		if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", t.Name, err)
		}
		if err := writeRecordSheet(f, t.Name, t.Schema.Names(), t.Records); err != nil {
			return err
		}
	}
	if len(tables) > 0 && tables[0].Name != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// Ensure ResultWriter implements ReportWriterPort
var _ ports.ReportWriterPort = (*ResultWriter)(nil)
