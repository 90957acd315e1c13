package inventory

import (
	"sort"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Status estado derivado de un producto en el reporte.
type Status string

const (
	StatusLowStock    Status = "bajo_stock"
	StatusNoMovements Status = "sin_movimientos"
	StatusNormal      Status = "normal"
)

// Label texto del estado en pantalla y exportaciones.
func (s Status) Label() string {
	switch s {
	case StatusLowStock:
		return "Bajo stock"
	case StatusNoMovements:
		return "Sin movimientos"
	}
	return "Normal"
}

// StatusFilter filtro de estado del reporte.
type StatusFilter string

const (
	FilterAll         StatusFilter = "todos"
	FilterLowStock    StatusFilter = "stock_minimo"
	FilterNoMovements StatusFilter = "sin_movimientos"
)

// ParseStatusFilter vacío = todos.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterLowStock, FilterNoMovements:
		return f, nil
	}
	return "", domain.ErrInvalidInput
}

// ProductSummary fila del reporte: un producto con sus totales en la ventana.
type ProductSummary struct {
	Product       *entity.Product
	Entries       int64
	Exits         int64
	Difference    int64
	MovementCount int64
	Status        Status
}

// Totals sumatoria de las filas incluidas.
type Totals struct {
	Entries    int64
	Exits      int64
	Difference int64
	LowStock   int
}

// Report resultado de la agregación.
type Report struct {
	Window          Window
	Area            entity.Area
	Filter          StatusFilter
	Rows            []ProductSummary
	Totals          Totals
	OrphanMovements int64 // movimientos en la ventana cuyo producto ya no existe
}

// AggregateInput colecciones ya leídas. Si Area no está vacía, Products debe venir filtrado por área.
type AggregateInput struct {
	Products  []*entity.Product
	Movements []*entity.Movement
	Window    Window
	Area      entity.Area
	Filter    StatusFilter
}

// DeriveStatus bajo stock tiene prioridad sobre sin movimientos.
func DeriveStatus(p *entity.Product, movementsInWindow int64) Status {
	if p.IsLowStock() {
		return StatusLowStock
	}
	if movementsInWindow == 0 {
		return StatusNoMovements
	}
	return StatusNormal
}

// Aggregate suma entradas y salidas por producto dentro de la ventana y deriva su estado.
// Los movimientos fuera de la ventana se ignoran. Sin filtro de área, los que referencian
// productos inexistentes se cuentan como huérfanos.
func Aggregate(in AggregateInput) Report {
	filter := in.Filter
	if filter == "" {
		filter = FilterAll
	}

	index := make(map[string]int, len(in.Products))
	rows := make([]ProductSummary, 0, len(in.Products))
	for _, p := range in.Products {
		if p == nil {
			continue
		}
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(rows)
		rows = append(rows, ProductSummary{Product: p})
	}

	var orphans int64
	for _, m := range in.Movements {
		if m == nil || !in.Window.Contains(m.OccurredAt) {
			continue
		}
		i, ok := index[m.ProductID]
		if !ok {
			if in.Area == "" {
				orphans++
			}
			continue
		}
		row := &rows[i]
		switch m.Type {
		case entity.MovementTypeEntry:
			row.Entries += m.Quantity
		case entity.MovementTypeExit:
			row.Exits += m.Quantity
		default:
			continue
		}
		row.MovementCount++
	}

	out := rows[:0]
	var totals Totals
	for _, row := range rows {
		row.Difference = row.Entries - row.Exits
		row.Status = DeriveStatus(row.Product, row.MovementCount)
		if !keep(row, filter) {
			continue
		}
		totals.Entries += row.Entries
		totals.Exits += row.Exits
		if row.Status == StatusLowStock {
			totals.LowStock++
		}
		out = append(out, row)
	}
	totals.Difference = totals.Entries - totals.Exits
	SortByName(out)

	return Report{
		Window:          in.Window,
		Area:            in.Area,
		Filter:          filter,
		Rows:            out,
		Totals:          totals,
		OrphanMovements: orphans,
	}
}

func keep(row ProductSummary, f StatusFilter) bool {
	switch f {
	case FilterLowStock:
		return row.Status == StatusLowStock
	case FilterNoMovements:
		return row.MovementCount == 0
	}
	return true
}

// SortByName ordena por nombre con reglas del español (tildes, ñ) y desempata por código.
func SortByName(rows []ProductSummary) {
	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		if cmp := c.CompareString(rows[i].Product.Name, rows[j].Product.Name); cmp != 0 {
			return cmp < 0
		}
		return rows[i].Product.Code < rows[j].Product.Code
	})
}
