package inventory

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el movimiento y el ajuste de stock se apliquen juntos o no se apliquen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// LedgerMetrics contadores del libro de movimientos. Las implementaciones deben tolerar receptor nil.
type LedgerMetrics interface {
	MovementRegistered(t entity.MovementType)
	MovementRejected(reason string)
	ConsistencyRisk()
	ReconciliationDrift()
}

// ReportExporter convierte la tabla del reporte en un archivo descargable.
type ReportExporter interface {
	Export(ctx context.Context, table domaininv.ExportTable) ([]byte, error)
	ContentType() string
	Extension() string
}

type nopMetrics struct{}

func (nopMetrics) MovementRegistered(entity.MovementType) {}
func (nopMetrics) MovementRejected(string)                {}
func (nopMetrics) ConsistencyRisk()                       {}
func (nopMetrics) ReconciliationDrift()                   {}
