package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

// RegisterMovementUseCase valida un movimiento y lo aplica al libro y al stock en una sola transacción.
// El stock se ajusta con un UPDATE condicional (stock + delta >= 0), nunca leyendo y escribiendo por separado.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	metrics     LedgerMetrics
	log         *logger.Logger
	now         func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	metrics LedgerMetrics,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		metrics:     metrics,
		log:         log.Component("ledger"),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// MovementInputDTO entrada para registrar un movimiento. UserID viene del token, no del body.
type MovementInputDTO struct {
	UserID     string
	ProductID  string
	Type       string
	Quantity   string
	Reason     string
	EmployeeID string
	OccurredAt *time.Time
}

// MovementResult movimiento guardado y stock del producto después de aplicarlo.
type MovementResult struct {
	Movement *entity.Movement
	Product  *entity.Product
	Stock    int64
}

// raceLost la validación previa aceptó la salida pero el UPDATE condicional no encontró stock suficiente.
type raceLost struct {
	available int64
}

func (e *raceLost) Error() string { return "stock consumido por otro movimiento concurrente" }

// RegisterMovement valida (empleado, cantidad, motivo, stock) y aplica el movimiento.
// Errores: *domain.ValidationError, domain.ErrNotFound, domain.ErrInvalidInput o *domain.PersistenceError.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*MovementResult, error) {
	candidate := domaininv.Candidate{
		ProductID:  input.ProductID,
		Type:       entity.MovementType(input.Type),
		Quantity:   input.Quantity,
		Reason:     input.Reason,
		EmployeeID: input.EmployeeID,
	}
	accepted, err := domaininv.ValidateInput(candidate)
	if err != nil {
		uc.rejected(err)
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, accepted.ProductID)
	if err != nil {
		return nil, domain.Persistence("get product", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := domaininv.CheckStock(accepted, product.Stock); err != nil {
		uc.rejected(err)
		return nil, err
	}

	now := uc.now()
	occurredAt := now
	if input.OccurredAt != nil && !input.OccurredAt.IsZero() {
		occurredAt = *input.OccurredAt
	}
	mov := &entity.Movement{
		ID:         uuid.New().String(),
		ProductID:  accepted.ProductID,
		Type:       accepted.Type,
		Quantity:   accepted.Quantity,
		Reason:     accepted.Reason,
		EmployeeID: accepted.EmployeeID,
		OccurredAt: occurredAt,
		RecordedAt: now,
		RecordedBy: input.UserID,
	}

	var stock int64
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		newStock, err := productRepo.AdjustStock(ctx, mov.ProductID, mov.Delta())
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				current, gerr := productRepo.GetByID(ctx, mov.ProductID)
				if gerr != nil || current == nil {
					return &raceLost{}
				}
				return &raceLost{available: current.Stock}
			}
			return err
		}
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		stock = newStock
		return nil
	})

	var lost *raceLost
	switch {
	case err == nil:
	case errors.As(err, &lost):
		uc.metrics.ConsistencyRisk()
		uc.metrics.MovementRejected(string(domain.CodeInsufficientStock))
		uc.log.Warn().
			Str("product_id", mov.ProductID).
			Str("type", string(mov.Type)).
			Int64("quantity", mov.Quantity).
			Int64("stock_checked", product.Stock).
			Int64("stock_available", lost.available).
			Msg("riesgo de consistencia: salida concurrente rechazada por el ajuste condicional")
		return nil, domain.InsufficientStock(lost.available)
	case errors.Is(err, domain.ErrNotFound):
		return nil, domain.ErrNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		uc.rejected(err)
		return nil, err
	default:
		uc.log.Error().Err(err).Str("product_id", mov.ProductID).Msg("registrar movimiento")
		return nil, domain.Persistence("register movement", err)
	}

	uc.metrics.MovementRegistered(mov.Type)
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_id", mov.ProductID).
		Str("type", string(mov.Type)).
		Int64("quantity", mov.Quantity).
		Int64("stock", stock).
		Msg("movimiento registrado")

	updated := *product
	updated.Stock = stock
	return &MovementResult{Movement: mov, Product: &updated, Stock: stock}, nil
}

func (uc *RegisterMovementUseCase) rejected(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		uc.metrics.MovementRejected(string(ve.Code))
		return
	}
	uc.metrics.MovementRejected("INVALID_INPUT")
}
