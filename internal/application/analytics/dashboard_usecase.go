// Package analytics contiene los casos de uso del Dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// DashboardUseCase genera el resumen de inventario del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define dónde empieza "hoy".
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO. area vacía = todas.
//
// Cinco llamadas en paralelo:
//  1. CountProducts              → TotalProducts + LowStockProducts
//  2. GetMovementTotals(hoy)     → TodayMovements, TodayEntries, TodayExits
//  3. GetMovementTotals(mes)     → MonthEntries, MonthExits
//  4. GetStockByArea             → StockByArea
//  5. GetDailyMovementTotals     → MovementTrend (7 días)
func (uc *DashboardUseCase) GetSummary(ctx context.Context, area entity.Area) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Semiabiertos: [hoy 00:00, mañana 00:00) y [día 1, día 1 del mes siguiente)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	trendStart := todayStart.AddDate(0, 0, -(TrendDays - 1))

	// ── Goroutines para paralelizar las 5 consultas DB ────────────────────────
	type countResult struct {
		total, low int64
		err        error
	}
	type totalsResult struct {
		totals repository.MovementTotals
		err    error
	}
	type areaResult struct {
		areas []repository.AreaStock
		err   error
	}
	type trendResult struct {
		days []repository.DailyMovementTotals
		err  error
	}

	countCh := make(chan countResult, 1)
	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	areaCh := make(chan areaResult, 1)
	trendCh := make(chan trendResult, 1)

	go func() {
		total, low, err := uc.analyticsRepo.CountProducts(ctx, area, entity.DefaultStockMinimum)
		countCh <- countResult{total, low, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.GetMovementTotals(ctx, todayStart, todayEnd, area)
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.GetMovementTotals(ctx, monthStart, monthEnd, area)
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		a, err := uc.analyticsRepo.GetStockByArea(ctx, area)
		areaCh <- areaResult{a, err}
	}()
	go func() {
		d, err := uc.analyticsRepo.GetDailyMovementTotals(ctx, trendStart, todayEnd, uc.loc, area)
		trendCh <- trendResult{d, err}
	}()

	counts := <-countCh
	today := <-todayCh
	month := <-monthCh
	areas := <-areaCh
	trend := <-trendCh

	if counts.err != nil {
		return nil, domain.Persistence("dashboard: conteo de productos", counts.err)
	}
	if today.err != nil {
		return nil, domain.Persistence("dashboard: movimientos de hoy", today.err)
	}
	if month.err != nil {
		return nil, domain.Persistence("dashboard: movimientos del mes", month.err)
	}
	if areas.err != nil {
		return nil, domain.Persistence("dashboard: stock por área", areas.err)
	}
	if trend.err != nil {
		return nil, domain.Persistence("dashboard: tendencia de movimientos", trend.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	byArea := make([]dto.AreaStockDTO, 0, len(areas.areas))
	for _, a := range areas.areas {
		byArea = append(byArea, dto.AreaStockDTO{
			Area:     string(a.Area),
			Label:    a.Area.Label(),
			Products: a.Products,
			Stock:    a.Stock,
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:    counts.total,
		LowStockProducts: counts.low,
		MonthEntries:     month.totals.Entries,
		MonthExits:       month.totals.Exits,
		TodayMovements:   today.totals.Count,
		TodayEntries:     today.totals.Entries,
		TodayExits:       today.totals.Exits,
		StockByArea:      byArea,
		MovementTrend:    buildTrend(trendStart, trend.days),
		Area:             string(area),
		DateLabel:        monthLabel(now),
	}, nil
}

// TrendDays días del gráfico de tendencia, incluido hoy.
const TrendDays = 7

// buildTrend rellena con ceros los días sin movimientos. start es la medianoche local del primer día.
func buildTrend(start time.Time, days []repository.DailyMovementTotals) []dto.DailyMovementDTO {
	byDay := make(map[string]repository.DailyMovementTotals, len(days))
	for _, d := range days {
		byDay[d.Day.Format(time.DateOnly)] = d
	}
	trend := make([]dto.DailyMovementDTO, 0, TrendDays)
	for i := 0; i < TrendDays; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(time.DateOnly)
		d := byDay[key]
		trend = append(trend, dto.DailyMovementDTO{
			Date:    key,
			Label:   dayLabel(day),
			Entries: d.Entries,
			Exits:   d.Exits,
		})
	}
	return trend
}

func dayLabel(t time.Time) string {
	months := [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}
	return fmt.Sprintf("%02d %s", t.Day(), months[t.Month()-1])
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
