package inventory

import (
	"fmt"
	"strconv"
	"time"
)

// NotAvailable valor de celda para datos opcionales ausentes.
const NotAvailable = "N/A"

// ExportHeaders orden fijo de columnas de las exportaciones.
var ExportHeaders = []string{
	"Producto", "Código", "Área", "Stock", "Mínimo", "Entradas", "Salidas", "Diferencia", "Estado",
}

var numericHeaders = map[string]bool{
	"Stock": true, "Mínimo": true, "Entradas": true, "Salidas": true, "Diferencia": true,
}

// IsNumericColumn indica si la columna lleva cantidades. Producto, Código y Área son texto
// aunque parezcan números ("007", "2024").
func IsNumericColumn(header string) bool { return numericHeaders[header] }

// ExportTable tabla lista para volcar a hoja de cálculo o PDF. Una fila por cada fila del reporte.
type ExportTable struct {
	Title       string
	GeneratedAt time.Time
	Headers     []string
	Rows        [][]string
}

// BuildExportTable convierte las filas del reporte en celdas de texto.
// Código y mínimo ausentes se escriben como N/A, nunca vacíos ni cero.
func BuildExportTable(report Report, generatedAt time.Time) ExportTable {
	headers := make([]string, len(ExportHeaders))
	copy(headers, ExportHeaders)

	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		p := r.Product
		code := p.Code
		if code == "" {
			code = NotAvailable
		}
		minimum := NotAvailable
		if p.StockMinimum != nil {
			minimum = strconv.FormatInt(*p.StockMinimum, 10)
		}
		rows = append(rows, []string{
			p.Name,
			code,
			p.Area.Label(),
			strconv.FormatInt(p.Stock, 10),
			minimum,
			strconv.FormatInt(r.Entries, 10),
			strconv.FormatInt(r.Exits, 10),
			strconv.FormatInt(r.Difference, 10),
			r.Status.Label(),
		})
	}

	return ExportTable{
		Title:       fmt.Sprintf("Reporte de Inventario - %s", generatedAt.Format("02/01/2006 15:04")),
		GeneratedAt: generatedAt,
		Headers:     headers,
		Rows:        rows,
	}
}

// ExportFilename nombre de archivo con la marca de tiempo de generación, p. ej.
// reporte_inventario_20250301_101500.xlsx.
func ExportFilename(generatedAt time.Time, ext string) string {
	return fmt.Sprintf("reporte_inventario_%s.%s", generatedAt.Format("20060102_150405"), ext)
}
