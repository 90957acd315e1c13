package inventory

import (
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var employeeIDPattern = regexp.MustCompile(`^\d+$`)

// MaxQuantity tope de unidades por movimiento. Mantiene stock + cantidad lejos del límite de BIGINT.
const MaxQuantity = 1_000_000_000

var maxQuantity = decimal.NewFromInt(MaxQuantity)

// Candidate movimiento tal como llega del formulario, antes de validar.
// Quantity es el valor crudo (número o texto).
type Candidate struct {
	ProductID  string
	Type       entity.MovementType
	Quantity   string
	Reason     string
	EmployeeID string
	OccurredAt time.Time
}

// AcceptedMovement movimiento que pasó todas las reglas; listo para el libro.
type AcceptedMovement struct {
	ProductID  string
	Type       entity.MovementType
	Quantity   int64
	Reason     string
	EmployeeID string
	OccurredAt time.Time
}

// Delta variación de stock que produce el movimiento aceptado.
func (a *AcceptedMovement) Delta() int64 {
	if a.Type == entity.MovementTypeExit {
		return -a.Quantity
	}
	return a.Quantity
}

// ValidateInput aplica las reglas que no dependen del stock, en orden:
// empleado, cantidad, motivo. Corta en la primera que falla.
func ValidateInput(c Candidate) (*AcceptedMovement, error) {
	if strings.TrimSpace(c.ProductID) == "" || !c.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}

	employeeID := strings.TrimSpace(c.EmployeeID)
	if employeeID == "" || !employeeIDPattern.MatchString(employeeID) {
		return nil, domain.NewValidationError(domain.CodeInvalidEmployeeID, "la cédula del empleado debe contener solo dígitos")
	}

	qty, ok := parseQuantity(c.Quantity)
	if !ok {
		return nil, domain.NewValidationError(domain.CodeInvalidQuantity, "la cantidad debe ser un número entero mayor que cero")
	}

	reason := strings.TrimSpace(c.Reason)
	if reason == "" {
		return nil, domain.NewValidationError(domain.CodeMissingReason, "el motivo es obligatorio")
	}

	return &AcceptedMovement{
		ProductID:  strings.TrimSpace(c.ProductID),
		Type:       c.Type,
		Quantity:   qty,
		Reason:     reason,
		EmployeeID: employeeID,
		OccurredAt: c.OccurredAt,
	}, nil
}

// ValidateMovement aplica todas las reglas; la última compara una salida contra currentStock.
func ValidateMovement(c Candidate, currentStock int64) (*AcceptedMovement, error) {
	accepted, err := ValidateInput(c)
	if err != nil {
		return nil, err
	}
	if err := CheckStock(accepted, currentStock); err != nil {
		return nil, err
	}
	return accepted, nil
}

// CheckStock rechaza una salida mayor que el stock disponible.
func CheckStock(m *AcceptedMovement, currentStock int64) error {
	if m.Type == entity.MovementTypeExit && m.Quantity > currentStock {
		return domain.InsufficientStock(currentStock)
	}
	return nil
}

func parseQuantity(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, false
	}
	if !d.IsPositive() || !d.IsInteger() || d.GreaterThan(maxQuantity) {
		return 0, false
	}
	return d.IntPart(), true
}
