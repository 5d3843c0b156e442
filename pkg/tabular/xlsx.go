package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSX serializes the table as a single-sheet workbook: header row first,
// then one row per record.
func (t *Table) XLSX(sheet string) ([]byte, error) {
	if sheet == "" {
		sheet = "Sheet1"
	}
	workbook := excelize.NewFile()
	defer workbook.Close()

	if sheet != "Sheet1" {
		if err := workbook.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("name sheet: %w", err)
		}
	}
	if err := writeXLSXRow(workbook, sheet, 1, t.Headers); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := writeXLSXRow(workbook, sheet, i+2, row); err != nil {
			return nil, err
		}
	}
	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

func writeXLSXRow(workbook *excelize.File, sheet string, rowIndex int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIndex)
		if err != nil {
			return fmt.Errorf("build cell reference: %w", err)
		}
		if err := workbook.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	return nil
}
