// Package excel exporta el reporte de inventario como hoja de cálculo .xlsx.
package excel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	appinv "github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	domaininv "github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
)

// SheetName nombre de la única hoja del libro.
const SheetName = "Reporte"

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var _ appinv.ReportExporter = (*ReportExporter)(nil)

// ReportExporter implementa inventory.ReportExporter con excelize.
type ReportExporter struct{}

// NewReportExporter construye el exportador.
func NewReportExporter() *ReportExporter { return &ReportExporter{} }

func (*ReportExporter) ContentType() string { return contentType }
func (*ReportExporter) Extension() string   { return "xlsx" }

// Export escribe título en A1, encabezados en la fila 3 y una fila por producto debajo.
// Solo las columnas de cantidades se guardan como número; el texto se conserva tal cual.
func (e *ReportExporter) Export(_ context.Context, table domaininv.ExportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo título: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
	}

	if err := f.SetCellValue(SheetName, "A1", table.Title); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	_ = f.SetCellStyle(SheetName, "A1", "A1", titleStyle)

	const headerRow = 3
	headers := make([]any, len(table.Headers))
	for i, h := range table.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(SheetName, cell(1, headerRow), &headers); err != nil {
		return nil, fmt.Errorf("excel: encabezados: %w", err)
	}
	if len(table.Headers) > 0 {
		_ = f.SetCellStyle(SheetName, cell(1, headerRow), cell(len(table.Headers), headerRow), headerStyle)
	}

	for i, r := range table.Rows {
		values := make([]any, len(r))
		for j, v := range r {
			values[j] = v
			if j >= len(table.Headers) || !domaininv.IsNumericColumn(table.Headers[j]) {
				continue
			}
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				values[j] = n
			}
		}
		if err := f.SetSheetRow(SheetName, cell(1, headerRow+1+i), &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+1, err)
		}
	}

	if n := len(table.Headers); n > 0 {
		first, _ := excelize.ColumnNumberToName(1)
		last, _ := excelize.ColumnNumberToName(n)
		_ = f.SetColWidth(SheetName, first, first, 32)
		if n > 1 {
			second, _ := excelize.ColumnNumberToName(2)
			_ = f.SetColWidth(SheetName, second, last, 14)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
