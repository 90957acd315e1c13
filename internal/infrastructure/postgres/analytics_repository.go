package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación del puerto AnalyticsRepository sobre PostgreSQL.
// Todas las consultas son de sólo lectura. Area vacía = todas las áreas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el repositorio con el pool de conexiones.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountProducts total de productos y cuántos están por debajo de su mínimo efectivo.
func (r *AnalyticsRepo) CountProducts(ctx context.Context, area entity.Area, defaultMinimum int64) (int64, int64, error) {
	const q = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE stock < COALESCE(stock_minimum, $2))
		FROM products
		WHERE ($1 = '' OR area = $1)`

	var total, low int64
	if err := r.pool.QueryRow(ctx, q, string(area), defaultMinimum).Scan(&total, &low); err != nil {
		return 0, 0, fmt.Errorf("analytics.CountProducts: %w", err)
	}
	return total, low, nil
}

// ── Métodos del Dashboard ─────────────────────────────────────────────────────

// GetMovementTotals suma entradas y salidas con occurred_at en [from, to).
// Con área solo cuenta movimientos de productos existentes en esa área.
func (r *AnalyticsRepo) GetMovementTotals(ctx context.Context, from, to time.Time, area entity.Area) (repository.MovementTotals, error) {
	const q = `
		SELECT
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'entrada'), 0),
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'salida'), 0),
			COUNT(*)
		FROM movements m
		LEFT JOIN products p ON p.id = m.product_id
		WHERE m.occurred_at >= $1
		  AND m.occurred_at <  $2
		  AND ($3 = '' OR p.area = $3)`

	var t repository.MovementTotals
	if err := r.pool.QueryRow(ctx, q, from, to, string(area)).Scan(&t.Entries, &t.Exits, &t.Count); err != nil {
		return t, fmt.Errorf("analytics.GetMovementTotals: %w", err)
	}
	return t, nil
}

// GetDailyMovementTotals suma entradas y salidas por día calendario de loc.
func (r *AnalyticsRepo) GetDailyMovementTotals(ctx context.Context, from, to time.Time, loc *time.Location, area entity.Area) ([]repository.DailyMovementTotals, error) {
	const q = `
		SELECT
			date_trunc('day', m.occurred_at AT TIME ZONE $4)::date AS day,
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'entrada'), 0),
			COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'salida'), 0)
		FROM movements m
		LEFT JOIN products p ON p.id = m.product_id
		WHERE m.occurred_at >= $1
		  AND m.occurred_at <  $2
		  AND ($3 = '' OR p.area = $3)
		GROUP BY day
		ORDER BY day`

	rows, err := r.pool.Query(ctx, q, from, to, string(area), timezoneName(loc))
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDailyMovementTotals: %w", err)
	}
	defer rows.Close()

	var result []repository.DailyMovementTotals
	for rows.Next() {
		var d repository.DailyMovementTotals
		if err := rows.Scan(&d.Day, &d.Entries, &d.Exits); err != nil {
			return nil, fmt.Errorf("analytics.GetDailyMovementTotals scan: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// timezoneName nombre IANA para AT TIME ZONE. "Local" no existe en PostgreSQL.
func timezoneName(loc *time.Location) string {
	if loc == nil || loc.String() == "Local" || loc.String() == "" {
		return "UTC"
	}
	return loc.String()
}

// GetStockByArea agrupa stock y cantidad de productos por área.
func (r *AnalyticsRepo) GetStockByArea(ctx context.Context, area entity.Area) ([]repository.AreaStock, error) {
	const q = `
		SELECT area, COUNT(*), COALESCE(SUM(stock), 0)
		FROM products
		WHERE ($1 = '' OR area = $1)
		GROUP BY area
		ORDER BY area`

	rows, err := r.pool.Query(ctx, q, string(area))
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStockByArea: %w", err)
	}
	defer rows.Close()

	var result []repository.AreaStock
	for rows.Next() {
		var s repository.AreaStock
		if err := rows.Scan(&s.Area, &s.Products, &s.Stock); err != nil {
			return nil, fmt.Errorf("analytics.GetStockByArea scan: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
