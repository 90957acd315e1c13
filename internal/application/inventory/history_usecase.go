package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// HistoryUseCase consultas de lectura sobre el libro: historial filtrado y actividad reciente.
type HistoryUseCase struct {
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
	loc          *time.Location
	now          func() time.Time
}

// NewHistoryUseCase construye el caso de uso. loc es la zona horaria de las fechas de filtro.
func NewHistoryUseCase(movementRepo repository.MovementRepository, productRepo repository.ProductRepository, loc *time.Location) *HistoryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &HistoryUseCase{movementRepo: movementRepo, productRepo: productRepo, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *HistoryUseCase) WithClock(now func() time.Time) *HistoryUseCase {
	uc.now = now
	return uc
}

// History lista movimientos más recientes primero, con nombre, código y stock actual del producto.
func (uc *HistoryUseCase) History(ctx context.Context, in dto.MovementHistoryRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	filter := repository.MovementFilter{
		ProductID: strings.TrimSpace(in.ProductID),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Type != "" {
		t := entity.MovementType(strings.ToLower(in.Type))
		if !t.Valid() {
			return nil, domain.ErrInvalidInput
		}
		filter.Type = t
	}
	if in.From != "" {
		from, err := ParseDate(in.From, uc.loc)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := ParseDate(in.To, uc.loc)
		if err != nil {
			return nil, err
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, domain.ErrInvalidInput
	}

	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.Persistence("list movements", err)
	}
	total, err := uc.movementRepo.Count(ctx, filter)
	if err != nil {
		return nil, domain.Persistence("count movements", err)
	}
	products, err := uc.lookupProducts(ctx, list)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m, products[m.ProductID]))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Recent movimientos de la última hora, más recientes primero, máximo 10.
func (uc *HistoryUseCase) Recent(ctx context.Context) ([]dto.RecentMovementDTO, error) {
	now := uc.now()
	list, err := uc.movementRepo.Recent(ctx, now.Add(-domaininv.RecentWindow), domaininv.RecentLimit)
	if err != nil {
		return nil, domain.Persistence("recent movements", err)
	}
	products, err := uc.lookupProducts(ctx, list)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for id, p := range products {
		names[id] = p.Name
	}

	items := domaininv.RecentActivity(list, names, now, domaininv.RecentWindow, domaininv.RecentLimit)
	out := make([]dto.RecentMovementDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RecentMovementDTO{
			ID:          it.Movement.ID,
			ProductID:   it.Movement.ProductID,
			ProductName: it.ProductName,
			Type:        string(it.Movement.Type),
			Quantity:    it.Movement.Quantity,
			Reason:      it.Movement.Reason,
			EmployeeID:  it.Movement.EmployeeID,
			OccurredAt:  it.Movement.OccurredAt,
		})
	}
	return out, nil
}

// lookupProducts resuelve los productos referenciados; los eliminados no aparecen en el mapa.
func (uc *HistoryUseCase) lookupProducts(ctx context.Context, list []*entity.Movement) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	seen := make(map[string]bool)
	for _, m := range list {
		if seen[m.ProductID] {
			continue
		}
		seen[m.ProductID] = true
		p, err := uc.productRepo.GetByID(ctx, m.ProductID)
		if err != nil {
			return nil, domain.Persistence("get product", err)
		}
		if p != nil {
			out[m.ProductID] = p
		}
	}
	return out, nil
}

// ParseDate acepta YYYY-MM-DD (medianoche en loc) o RFC3339.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, domain.ErrInvalidInput
}
