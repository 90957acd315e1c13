package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// ProductFilter criterios de listado de productos. Area vacía = todas.
type ProductFilter struct {
	Area   entity.Area
	Search string // coincide con nombre o código (sin distinguir mayúsculas)
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetByCode devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update modifica los campos descriptivos; nunca stock ni initial_stock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateImages(ctx context.Context, id, imageURL, qrImageURL string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	// AdjustStock suma delta al stock solo si el resultado no queda negativo.
	// Devuelve el nuevo stock; domain.ErrInsufficientStock si la condición no se cumplió
	// y domain.ErrNotFound si el producto no existe.
	AdjustStock(ctx context.Context, id string, delta int64) (int64, error)
}
