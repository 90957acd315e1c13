package dto

import "time"

// InventoryReportRequest filtros de GET /api/reports/inventory.
// Range: dia|semana|mes|anio|personalizado (o day|week|month|year|custom).
// Ref fija el día de referencia del rango (por defecto hoy); Start/End solo para personalizado.
// Seq se devuelve tal cual como request_seq.
type InventoryReportRequest struct {
	Range  string `query:"range"`
	Area   string `query:"area"`
	Status string `query:"status"`
	Ref    string `query:"ref"`
	Start  string `query:"start"`
	End    string `query:"end"`
	Seq    string `query:"seq"`
}

// ReportRowDTO fila del reporte por producto.
type ReportRowDTO struct {
	ProductID        string `json:"product_id"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	Area             string `json:"area"`
	AreaLabel        string `json:"area_label"`
	Stock            int64  `json:"stock"`
	StockMinimum     *int64 `json:"stock_minimum"`
	EffectiveMinimum int64  `json:"effective_minimum"`
	Entries          int64  `json:"entries"`
	Exits            int64  `json:"exits"`
	Difference       int64  `json:"difference"`
	MovementCount    int64  `json:"movement_count"`
	Status           string `json:"status"`
	StatusLabel      string `json:"status_label"`
}

// ReportTotalsDTO totales de las filas incluidas.
type ReportTotalsDTO struct {
	Products   int   `json:"products"`
	LowStock   int   `json:"low_stock"`
	Entries    int64 `json:"entries"`
	Exits      int64 `json:"exits"`
	Difference int64 `json:"difference"`
}

// InventoryReportResponse respuesta del reporte. End es exclusivo.
type InventoryReportResponse struct {
	Range           string          `json:"range"`
	Start           time.Time       `json:"start"`
	End             time.Time       `json:"end"`
	Area            string          `json:"area,omitempty"`
	Status          string          `json:"status"`
	Rows            []ReportRowDTO  `json:"rows"`
	Totals          ReportTotalsDTO `json:"totals"`
	OrphanMovements int64           `json:"orphan_movements"`
	RequestSeq      string          `json:"request_seq,omitempty"`
}
