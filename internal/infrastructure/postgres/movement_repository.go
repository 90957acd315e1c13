package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL. La tabla es append-only (trigger en la migración).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `m.id, m.product_id, m.type, m.quantity, m.reason, m.employee_id, m.occurred_at, m.recorded_at, m.recorded_by`

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason,
			&m.EmployeeID, &m.OccurredAt, &m.RecordedAt, &m.RecordedBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Append inserta el movimiento. recorded_at lo asigna la base de datos.
func (r *MovementRepo) Append(ctx context.Context, mov *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, type, quantity, reason, employee_id, occurred_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING recorded_at`
	err := r.q.QueryRow(ctx, query,
		mov.ID, mov.ProductID, mov.Type, mov.Quantity, mov.Reason,
		mov.EmployeeID, mov.OccurredAt, mov.RecordedBy,
	).Scan(&mov.RecordedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func movementWhere(filter repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.ProductID != "" {
		add("m.product_id = $%d", filter.ProductID)
	}
	if filter.Type != "" {
		add("m.type = $%d", filter.Type)
	}
	if filter.From != nil {
		add("m.occurred_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("m.occurred_at < $%d", *filter.To)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List historial más reciente primero. Limit 0 = sin límite.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	where, args := movementWhere(filter)
	query := `SELECT ` + movementColumns + ` FROM movements m` + where +
		` ORDER BY m.occurred_at DESC, m.recorded_at DESC, m.id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return scanMovements(rows)
}

// Count total de movimientos que cumplen el filtro.
func (r *MovementRepo) Count(ctx context.Context, filter repository.MovementFilter) (int64, error) {
	where, args := movementWhere(filter)
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements m`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// ListInWindow movimientos con occurred_at en [from, to). Con área, se filtra por el área actual del producto.
func (r *MovementRepo) ListInWindow(ctx context.Context, from, to time.Time, area entity.Area) ([]*entity.Movement, error) {
	var rows pgx.Rows
	var err error
	if area == "" {
		rows, err = r.q.Query(ctx, `
			SELECT `+movementColumns+`
			FROM movements m
			WHERE m.occurred_at >= $1 AND m.occurred_at < $2
			ORDER BY m.occurred_at`, from, to)
	} else {
		rows, err = r.q.Query(ctx, `
			SELECT `+movementColumns+`
			FROM movements m
			JOIN products p ON p.id = m.product_id
			WHERE m.occurred_at >= $1 AND m.occurred_at < $2 AND p.area = $3
			ORDER BY m.occurred_at`, from, to, area)
	}
	if err != nil {
		return nil, fmt.Errorf("list movements in window: %w", err)
	}
	return scanMovements(rows)
}

// Recent movimientos desde since, más recientes primero.
func (r *MovementRepo) Recent(ctx context.Context, since time.Time, limit int) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements m
		WHERE m.occurred_at >= $1
		ORDER BY m.occurred_at DESC, m.recorded_at DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	return scanMovements(rows)
}

// TotalsByProduct suma histórica de entradas y salidas de un producto.
func (r *MovementRepo) TotalsByProduct(ctx context.Context, productID string) (repository.MovementTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE type = 'entrada'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'salida'), 0),
			COUNT(*)
		FROM movements
		WHERE product_id = $1`
	var t repository.MovementTotals
	if err := r.q.QueryRow(ctx, query, productID).Scan(&t.Entries, &t.Exits, &t.Count); err != nil {
		return t, fmt.Errorf("movement totals: %w", err)
	}
	return t, nil
}
