package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes each table as a sheet of one workbook, in order. Numbers
// stay numeric; missing values leave the cell empty.
func WriteXLSX(w io.Writer, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := sheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, t); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t Table) error {
	header := t.Header()
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", h, err)
		}
	}

	for r, row := range t.Rows {
		for col, h := range header {
			v := row.Get(h)
			if x, ok := v.(float64); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
				continue
			}
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set %s row %d: %w", h, r+1, err)
			}
		}
	}
	return nil
}

// sheetName trims a table name to Excel's 31 character sheet name limit.
func sheetName(name string) string {
	const maxLen = 31
	if name == "" {
		return "Sheet"
	}
	if len(name) > maxLen {
		return name[:maxLen]
	}
	return name
}
