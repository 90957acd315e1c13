package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

const (
	RecentWindow       = time.Hour
	RecentLimit        = 10
	UnknownProductName = "Desconocido"
)

// RecentItem movimiento reciente con el nombre del producto para mostrar.
type RecentItem struct {
	Movement    *entity.Movement
	ProductName string
}

// RecentActivity movimientos con occurred_at en [now-window, now], más recientes primero,
// como máximo limit. names mapea productID -> nombre; los huérfanos quedan como Desconocido.
func RecentActivity(movements []*entity.Movement, names map[string]string, now time.Time, window time.Duration, limit int) []RecentItem {
	since := now.Add(-window)
	items := make([]RecentItem, 0, len(movements))
	for _, m := range movements {
		if m == nil || m.OccurredAt.Before(since) || m.OccurredAt.After(now) {
			continue
		}
		name, ok := names[m.ProductID]
		if !ok || name == "" {
			name = UnknownProductName
		}
		items = append(items, RecentItem{Movement: m, ProductName: name})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Movement.OccurredAt.After(items[j].Movement.OccurredAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
