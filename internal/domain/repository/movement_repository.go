package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// MovementFilter criterios del historial de movimientos. Campos vacíos o nil no filtran.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	From      *time.Time // inclusivo
	To        *time.Time // exclusivo
	Limit     int
	Offset    int
}

// MovementTotals acumulado de entradas y salidas de un producto.
type MovementTotals struct {
	Entries int64
	Exits   int64
	Count   int64
}

// MovementRepository puerto del libro de movimientos. Solo agrega y lee: no hay Update ni Delete.
type MovementRepository interface {
	// Append inserta el movimiento; la base de datos asigna RecordedAt y lo escribe en mov.
	Append(ctx context.Context, mov *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	Count(ctx context.Context, filter MovementFilter) (int64, error)
	// ListInWindow movimientos con occurred_at en [from, to). Con area no vacía solo incluye
	// movimientos de productos existentes en esa área.
	ListInWindow(ctx context.Context, from, to time.Time, area entity.Area) ([]*entity.Movement, error)
	// Recent movimientos con occurred_at >= since, más recientes primero.
	Recent(ctx context.Context, since time.Time, limit int) ([]*entity.Movement, error)
	TotalsByProduct(ctx context.Context, productID string) (MovementTotals, error)
}
