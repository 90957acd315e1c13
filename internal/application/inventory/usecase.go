package inventory

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
// userID es el usuario autenticado que queda como RecordedBy.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	input := MovementInputDTO{
		UserID:     userID,
		ProductID:  in.ProductID,
		Type:       in.Type,
		Quantity:   string(in.Quantity),
		Reason:     in.Reason,
		EmployeeID: in.EmployeeID,
		OccurredAt: in.OccurredAt,
	}
	res, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterMovementResponse{
		Movement: toMovementResponse(res.Movement, res.Product),
		Stock:    res.Stock,
	}, nil
}

func toMovementResponse(m *entity.Movement, p *entity.Product) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       string(m.Type),
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		EmployeeID: m.EmployeeID,
		OccurredAt: m.OccurredAt,
		RecordedAt: m.RecordedAt,
		RecordedBy: m.RecordedBy,
	}
	if p != nil {
		stock := p.Stock
		out.ProductName = p.Name
		out.ProductCode = p.Code
		out.ProductStock = &stock
	}
	return out
}
