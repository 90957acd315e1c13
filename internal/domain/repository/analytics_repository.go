package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// AreaStock stock total y cantidad de productos de un área.
type AreaStock struct {
	Area     entity.Area
	Products int64
	Stock    int64
}

// DailyMovementTotals entradas y salidas de un día calendario. Day es la medianoche del día.
type DailyMovementTotals struct {
	Day     time.Time
	Entries int64
	Exits   int64
}

// AnalyticsRepository define las consultas de lectura del dashboard de inventario.
// Las implementaciones son read-only. Area vacía = todas las áreas.
type AnalyticsRepository interface {
	// CountProducts devuelve el total de productos y cuántos están bajo su mínimo
	// (mínimo por defecto cuando stock_minimum es NULL).
	CountProducts(ctx context.Context, area entity.Area, defaultMinimum int64) (total, lowStock int64, err error)

	// ── Métodos del Dashboard ─────────────────────────────────────────────────

	// GetMovementTotals suma entradas y salidas con occurred_at en [from, to).
	GetMovementTotals(ctx context.Context, from, to time.Time, area entity.Area) (MovementTotals, error)

	// GetDailyMovementTotals agrupa por día de loc los movimientos con occurred_at en [from, to).
	// Solo devuelve días con movimientos, ordenados ascendente.
	GetDailyMovementTotals(ctx context.Context, from, to time.Time, loc *time.Location, area entity.Area) ([]DailyMovementTotals, error)

	// GetStockByArea agrupa stock por área (gráfico de stock).
	GetStockByArea(ctx context.Context, area entity.Area) ([]AreaStock, error)
}
