package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/inventario-movimientos/internal/application/analytics"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los indicadores de inventario del día y del mes en curso.
// GET /api/dashboard/summary?area=<almacen|quimicos|mro>&seq=<n>
//
// Respuesta: DashboardSummaryDTO (total_products, low_stock_products, month_entries,
// month_exits, today_movements, stock_by_area, date_label, request_seq).
// Las fechas se calculan en el servidor con la zona horaria configurada.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	area, err := inventory.ParseArea(c.Query("area"))
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.uc.GetSummary(c.UserContext(), area)
	if err != nil {
		return respondError(c, err)
	}
	summary.RequestSeq = c.Query("seq")

	return c.JSON(summary)
}
