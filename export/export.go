// Package export writes reconstructed tables and lab findings to files.
package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/labscan/mapper"
	"github.com/tsawler/labscan/model"
)

// DefaultSheet is used when no sheet name is given.
const DefaultSheet = "Table"

// WriteCSV writes the table as CSV.
func WriteCSV(w io.Writer, t model.Table) error {
	_, err := io.WriteString(w, t.ToCSV())
	return err
}

// WriteXLSX writes the table to a single-sheet workbook, one row per table
// row. Cells that parse as numbers are stored as numbers.
func WriteXLSX(w io.Writer, t model.Table, sheet string) error {
	f, err := newWorkbook(sheet)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	name := sheetName(sheet)
	for i, row := range t.Rows {
		for j, cell := range row {
			if err := setCell(f, name, j+1, i+1, cellValue(cell)); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the table to a workbook file at path.
func SaveXLSX(path string, t model.Table, sheet string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteXLSX(out, t, sheet); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

var findingHeaders = []string{"Test", "Value", "Reference Range", "Confidence", "Note"}

// WriteFindingsXLSX writes lab findings with a header row.
func WriteFindingsXLSX(w io.Writer, findings []mapper.LabFinding) error {
	const sheet = "Findings"
	f, err := newWorkbook(sheet)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	for i, h := range findingHeaders {
		if err := setCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	for i, fd := range findings {
		row := i + 2
		values := []any{fd.Test, fd.Value, fd.ReferenceRange, fd.Confidence, fd.Note}
		for j, v := range values {
			if err := setCell(f, sheet, j+1, row, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "C", 16)
	_ = f.SetColWidth(sheet, "E", "E", 60)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func sheetName(sheet string) string {
	if sheet == "" {
		return DefaultSheet
	}
	return sheet
}

// newWorkbook creates a workbook whose only sheet is named sheet.
func newWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	name := sheetName(sheet)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("name sheet %q: %w", name, err)
	}
	return f, nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}

func cellValue(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
