// internal/output/excel.go
package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/valpere/SurveyRanker/pkg/types"
)

// ExcelWriter writes the ranking as a single-sheet workbook with a frozen
// header row.
type ExcelWriter struct {
	filename  string
	sheetName string
}

// NewExcelWriter creates a new Excel writer for the given path and sheet.
func NewExcelWriter(filename, sheetName string) (*ExcelWriter, error) {
	if filename == "" {
		return nil, fmt.Errorf("excel output path is required")
	}
	if sheetName == "" {
		sheetName = "Ranking"
	}
	return &ExcelWriter{
		filename:  filename,
		sheetName: sheetName,
	}, nil
}

// Write builds the workbook and saves it in one shot.
func (w *ExcelWriter) Write(rows []types.RankingRow) error {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(w.sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", w.sheetName, err)
	}
	file.SetActiveSheet(index)
	if w.sheetName != "Sheet1" {
		if err := file.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	header, records := BuildTable(rows)

	if err := w.writeRow(file, 1, header); err != nil {
		return err
	}
	for i, record := range records {
		if err := w.writeRow(file, i+2, record); err != nil {
			return err
		}
	}

	if err := file.SetPanes(w.sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	if err := file.SaveAs(w.filename); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeRow sets one sheet row starting at column A.
func (w *ExcelWriter) writeRow(file *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell name for row %d: %w", rowNum, err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := file.SetSheetRow(w.sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// Close is a no-op; the workbook is saved atomically in Write.
func (w *ExcelWriter) Close() error {
	return nil
}
