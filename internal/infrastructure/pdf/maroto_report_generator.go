// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4 (horizontal para que quepan las nueve columnas):
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER (se repite en cada página): título + fecha de generación │
//	│  Producto | Código | Área | Stock | Mínimo | Ent. | Sal. | ...   │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  una fila por producto                                           │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  FOOTER: cantidad de productos                                   │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinv "github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	domaininv "github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// columnSizes ancho de cada columna sobre una grilla de 24 (nueve columnas no caben en la de 12).
var columnSizes = []int{6, 2, 2, 2, 2, 2, 2, 2, 4}

const gridSize = 24

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinv.ReportExporter = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventory.ReportExporter usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func (*MarotoReportGenerator) ContentType() string { return "application/pdf" }
func (*MarotoReportGenerator) Extension() string   { return "pdf" }

// Export genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Export(_ context.Context, table domaininv.ExportTable) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(gridSize).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(table.Title, true).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterHeader(headerRows(table)...); err != nil {
		return nil, fmt.Errorf("pdf: registrar encabezado: %w", err)
	}

	for i, r := range table.Rows {
		m.AddRows(detailRow(r, i%2 == 1))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(table.Rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: título, fecha y cabecera de la tabla. Maroto los repite en cada página.
func headerRows(table domaininv.ExportTable) []core.Row {
	title := row.New(10).Add(
		col.New(gridSize).Add(
			text.New(table.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
	)
	generated := row.New(6).Add(
		col.New(gridSize).Add(
			text.New("Generado: "+table.GeneratedAt.Format("02/01/2006 15:04:05"), props.Text{
				Size: 8, Color: colorGray,
			}),
		),
	)

	cols := make([]core.Col, 0, len(table.Headers))
	for i, h := range table.Headers {
		cols = append(cols, col.New(sizeAt(i)).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignAt(i),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	head := row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})

	return []core.Row{title, generated, head}
}

// detailRow: una fila por producto, con fondo alterno.
func detailRow(values []string, striped bool) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(sizeAt(i)).Add(text.New(v, props.Text{
			Size: 8, Align: alignAt(i), Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(6).Add(cols...)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// footerRow: total de productos listados.
func footerRow(n int) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("Total de productos: %d", n), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sizeAt(i int) int {
	if i < len(columnSizes) {
		return columnSizes[i]
	}
	return 2
}

// alignAt: texto a la izquierda (producto, código, área, estado), números a la derecha.
func alignAt(i int) align.Type {
	switch i {
	case 0, 1, 2, 8:
		return align.Left
	default:
		return align.Right
	}
}
