package exporter

import (
	"fmt"
	"io"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"

	"github.com/xuri/excelize/v2"
)

// SheetName - имя листа с кнопками в книге Excel.
const SheetName = "Buttons"

var excelHeaders = []string{"Order", "Label", "Type", "Snippet", "Text", "Colour"}

// ExcelExporter реализует интерфейс Exporter для выгрузки кнопок в файл .xlsx.
type ExcelExporter struct {
	out io.Writer
}

// NewExcelExporter создает новый экземпляр ExcelExporter.
func NewExcelExporter(out io.Writer) ports.Exporter {
	return &ExcelExporter{out: out}
}

// Export записывает кнопки в книгу Excel, по одной строке на кнопку.
// Ячейка с цветом закрашивается цветом кнопки.
func (e *ExcelExporter) Export(options []domain.Option) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close excel file: %w", closeErr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, opt := range options {
		row := i + 2
		values := []interface{}{opt.Order, opt.Label, string(opt.Kind), opt.Selector, opt.Content, opt.Color}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}

		if isHexColor(opt.Color) {
			style, err := f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{opt.Color}},
			})
			if err != nil {
				return fmt.Errorf("failed to create colour style: %w", err)
			}
			cell := fmt.Sprintf("F%d", row)
			if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
				return fmt.Errorf("failed to apply colour style: %w", err)
			}
		}
	}

	if err := f.Write(e.out); err != nil {
		return fmt.Errorf("failed to write excel: %w", err)
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
