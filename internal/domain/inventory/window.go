package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// Range rango de reporte seleccionado.
type Range string

const (
	RangeDay    Range = "dia"
	RangeWeek   Range = "semana"
	RangeMonth  Range = "mes"
	RangeYear   Range = "anio"
	RangeCustom Range = "personalizado"
)

var rangeAliases = map[string]Range{
	"dia": RangeDay, "day": RangeDay,
	"semana": RangeWeek, "week": RangeWeek,
	"mes": RangeMonth, "month": RangeMonth,
	"anio": RangeYear, "año": RangeYear, "year": RangeYear,
	"personalizado": RangeCustom, "custom": RangeCustom,
}

// ParseRange acepta los nombres en español y sus alias en inglés. Vacío = mes.
func ParseRange(s string) (Range, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RangeMonth, nil
	}
	r, ok := rangeAliases[s]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return r, nil
}

// Window intervalo semiabierto [Start, End).
type Window struct {
	Range Range
	Start time.Time
	End   time.Time
}

// Contains indica si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ResolveWindow calcula la ventana del rango alrededor de ref, en loc:
//
//	dia           [hoy 00:00, mañana 00:00)
//	semana        [domingo más reciente 00:00, +7 días)
//	mes           [día 1, día 1 del mes siguiente)
//	anio          [1 de enero, 1 de enero siguiente)
//	personalizado [inicio 00:00, fin + 1 día 00:00), ambos días incluidos
//
// start y end solo se usan con personalizado y son obligatorios allí.
func ResolveWindow(r Range, ref time.Time, loc *time.Location, start, end *time.Time) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	ref = ref.In(loc)
	y, m, d := ref.Date()

	w := Window{Range: r}
	switch r {
	case RangeDay:
		w.Start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		w.End = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	case RangeWeek:
		sunday := d - int(ref.Weekday())
		w.Start = time.Date(y, m, sunday, 0, 0, 0, 0, loc)
		w.End = time.Date(y, m, sunday+7, 0, 0, 0, 0, loc)
	case RangeMonth:
		w.Start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		w.End = time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	case RangeYear:
		w.Start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		w.End = time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
	case RangeCustom:
		if start == nil || end == nil {
			return Window{}, domain.ErrInvalidInput
		}
		sy, sm, sd := start.In(loc).Date()
		ey, em, ed := end.In(loc).Date()
		w.Start = time.Date(sy, sm, sd, 0, 0, 0, 0, loc)
		w.End = time.Date(ey, em, ed+1, 0, 0, 0, 0, loc)
		if !w.Start.Before(w.End) {
			return Window{}, domain.ErrInvalidInput
		}
	default:
		return Window{}, domain.ErrInvalidInput
	}
	return w, nil
}
