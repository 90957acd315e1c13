package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
)

// ReportHandler reporte de inventario por período y su exportación.
type ReportHandler struct {
	uc *inventory.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Description  Entradas, salidas, diferencia y estado por producto en el período.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        range   query  string  false  "dia | semana | mes | anio | personalizado"  default(mes)
// @Param        area    query  string  false  "almacen | quimicos | mro | todos"
// @Param        status  query  string  false  "todos | stock_minimo | sin_movimientos"
// @Param        ref     query  string  false  "Día de referencia (YYYY-MM-DD)"
// @Param        start   query  string  false  "Inicio (personalizado)"
// @Param        end     query  string  false  "Fin inclusivo (personalizado)"
// @Param        seq     query  string  false  "Se devuelve como request_seq"
// @Success      200  {object}  dto.InventoryReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	var in dto.InventoryReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.Generate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  true   "xlsx | pdf"
// @Param        range   query  string  false  "dia | semana | mes | anio | personalizado"
// @Param        area    query  string  false  "almacen | quimicos | mro | todos"
// @Param        status  query  string  false  "todos | stock_minimo | sin_movimientos"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var in dto.InventoryReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	format := c.Query("format", "xlsx")
	file, err := h.uc.Export(c.UserContext(), in, format)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set("X-Report-Rows", strconv.Itoa(file.Rows))
	return c.Send(file.Content)
}
