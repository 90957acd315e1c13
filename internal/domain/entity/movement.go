package entity

import "time"

// MovementType tipo de movimiento de inventario.
type MovementType string

const (
	MovementTypeEntry MovementType = "entrada"
	MovementTypeExit  MovementType = "salida"
)

// Valid indica si el tipo es entrada o salida.
func (t MovementType) Valid() bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// Movement registro inmutable del libro de movimientos. ProductID es una referencia débil:
// el producto puede haber sido eliminado.
type Movement struct {
	ID         string
	ProductID  string
	Type       MovementType
	Quantity   int64 // siempre > 0; el signo lo da Type
	Reason     string
	EmployeeID string
	OccurredAt time.Time // fecha informada por el usuario
	RecordedAt time.Time // asignada por la base de datos
	RecordedBy string    // UserID
}

// Delta variación de stock que produce el movimiento.
func (m *Movement) Delta() int64 {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
