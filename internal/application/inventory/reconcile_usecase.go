package inventory

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

// ReconcileUseCase reconstruye el stock de un producto desde el libro
// (initial_stock + entradas - salidas) y lo compara con el almacenado.
type ReconcileUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	metrics      LedgerMetrics
	log          *logger.Logger
}

// NewReconcileUseCase construye el caso de uso de conciliación.
func NewReconcileUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	metrics LedgerMetrics,
	log *logger.Logger,
) *ReconcileUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &ReconcileUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		metrics:      metrics,
		log:          log.Component("reconcile"),
	}
}

// Reconcile devuelve la comparación; una diferencia se registra y se cuenta pero no se corrige.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, productID string) (*dto.ReconciliationDTO, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, domain.Persistence("get product", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	totals, err := uc.movementRepo.TotalsByProduct(ctx, productID)
	if err != nil {
		return nil, domain.Persistence("movement totals", err)
	}

	expected := product.InitialStock + totals.Entries - totals.Exits
	out := &dto.ReconciliationDTO{
		ProductID:     product.ID,
		Code:          product.Code,
		Name:          product.Name,
		InitialStock:  product.InitialStock,
		Entries:       totals.Entries,
		Exits:         totals.Exits,
		Movements:     totals.Count,
		ExpectedStock: expected,
		Stock:         product.Stock,
		Drift:         product.Stock - expected,
	}
	out.Consistent = out.Drift == 0
	if !out.Consistent {
		uc.metrics.ReconciliationDrift()
		uc.log.Warn().
			Str("product_id", product.ID).
			Int64("stock", product.Stock).
			Int64("expected", expected).
			Int64("drift", out.Drift).
			Msg("stock no coincide con el libro de movimientos")
	}
	return out, nil
}
