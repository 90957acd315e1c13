package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

// RawQuantity cantidad tal como llega del cliente: número JSON o texto ("5", "5.0").
// El validador de movimientos decide si es válida; aquí nunca se rechaza.
type RawQuantity string

// UnmarshalJSON guarda el literal sin interpretarlo. null queda vacío.
func (q *RawQuantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*q = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = RawQuantity(s)
	default:
		*q = RawQuantity(b)
	}
	return nil
}

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID  string      `json:"product_id"`
	Type       string      `json:"type"` // entrada | salida
	Quantity   RawQuantity `json:"quantity" swaggertype:"string"`
	Reason     string      `json:"reason"`
	EmployeeID string      `json:"employee_id"`
	OccurredAt *time.Time  `json:"occurred_at,omitempty"` // por defecto, ahora
}

// MovementResponse salida de un movimiento. ProductName/ProductCode vacíos si el producto ya no existe.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductCode  string    `json:"product_code,omitempty"`
	ProductStock *int64    `json:"product_stock,omitempty"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	Reason       string    `json:"reason"`
	EmployeeID   string    `json:"employee_id"`
	OccurredAt   time.Time `json:"occurred_at"`
	RecordedAt   time.Time `json:"recorded_at"`
	RecordedBy   string    `json:"recorded_by,omitempty"`
}

// RegisterMovementResponse movimiento registrado y stock resultante del producto.
type RegisterMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Stock    int64            `json:"stock"`
}

// MovementHistoryRequest filtros de GET /api/inventory/movements. Fechas YYYY-MM-DD, ambas inclusivas.
type MovementHistoryRequest struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	From      string `query:"from"`
	To        string `query:"to"`
	PageRequest
}

// MovementListResponse historial paginado, más recientes primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RecentMovementDTO elemento de la actividad reciente.
type RecentMovementDTO struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	EmployeeID  string    `json:"employee_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ReconciliationDTO comparación entre stock almacenado y el reconstruido desde el libro.
// Drift = Stock - ExpectedStock; distinto de cero indica inconsistencia.
type ReconciliationDTO struct {
	ProductID     string `json:"product_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	InitialStock  int64  `json:"initial_stock"`
	Entries       int64  `json:"entries"`
	Exits         int64  `json:"exits"`
	Movements     int64  `json:"movements"`
	ExpectedStock int64  `json:"expected_stock"`
	Stock         int64  `json:"stock"`
	Drift         int64  `json:"drift"`
	Consistent    bool   `json:"consistent"`
}
