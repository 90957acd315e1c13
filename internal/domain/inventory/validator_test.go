package inventory_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() inventory.Candidate {
	return inventory.Candidate{
		ProductID:  "p-1",
		Type:       entity.MovementTypeExit,
		Quantity:   "3",
		Reason:     "consumo planta",
		EmployeeID: "1032456789",
	}
}

func codeOf(t *testing.T, err error) domain.ValidationCode {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, llegó %v", err)
	return ve.Code
}

func TestValidateMovement_Aceptado(t *testing.T) {
	c := validCandidate()
	c.Reason = "  consumo planta  "
	got, err := inventory.ValidateMovement(c, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)
	assert.Equal(t, "consumo planta", got.Reason)
	assert.Equal(t, int64(-3), got.Delta())
}

func TestValidateMovement_EmpleadoInvalido(t *testing.T) {
	for _, id := range []string{"", "   ", "12a4", "-123", "1.5"} {
		c := validCandidate()
		c.EmployeeID = id
		_, err := inventory.ValidateMovement(c, 10)
		assert.Equal(t, domain.CodeInvalidEmployeeID, codeOf(t, err), "employee %q", id)
	}
}

func TestValidateMovement_CantidadInvalida(t *testing.T) {
	for _, q := range []string{"", "0", "-2", "abc", "2.5", "1e30", "1000000001", "9223372036854775807"} {
		c := validCandidate()
		c.Quantity = q
		_, err := inventory.ValidateMovement(c, 100)
		assert.Equal(t, domain.CodeInvalidQuantity, codeOf(t, err), "quantity %q", q)
	}
}

func TestValidateMovement_CantidadMaxima(t *testing.T) {
	c := validCandidate()
	c.Type = entity.MovementTypeEntry
	c.Quantity = "1000000000"
	got, err := inventory.ValidateMovement(c, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(inventory.MaxQuantity), got.Quantity)
}

func TestValidateMovement_CantidadDecimalEntera(t *testing.T) {
	c := validCandidate()
	c.Quantity = "4.00"
	got, err := inventory.ValidateMovement(c, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)
}

func TestValidateMovement_MotivoVacio(t *testing.T) {
	c := validCandidate()
	c.Reason = " \t "
	_, err := inventory.ValidateMovement(c, 10)
	assert.Equal(t, domain.CodeMissingReason, codeOf(t, err))
}

func TestValidateMovement_StockInsuficiente(t *testing.T) {
	c := validCandidate()
	c.Quantity = "11"
	_, err := inventory.ValidateMovement(c, 10)
	assert.Equal(t, domain.CodeInsufficientStock, codeOf(t, err))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, int64(10), ve.Available)
}

func TestValidateMovement_EntradaNoMiraStock(t *testing.T) {
	c := validCandidate()
	c.Type = entity.MovementTypeEntry
	c.Quantity = "500"
	_, err := inventory.ValidateMovement(c, 0)
	assert.NoError(t, err)
}

func TestValidateMovement_SalidaIgualAlStock(t *testing.T) {
	c := validCandidate()
	c.Quantity = "10"
	_, err := inventory.ValidateMovement(c, 10)
	assert.NoError(t, err)
}

func TestValidateMovement_OrdenDeReglas(t *testing.T) {
	// Todo inválido: gana la primera regla.
	c := inventory.Candidate{ProductID: "p-1", Type: entity.MovementTypeExit, Quantity: "-1", EmployeeID: "x"}
	_, err := inventory.ValidateMovement(c, 0)
	assert.Equal(t, domain.CodeInvalidEmployeeID, codeOf(t, err))

	c.EmployeeID = "123"
	_, err = inventory.ValidateMovement(c, 0)
	assert.Equal(t, domain.CodeInvalidQuantity, codeOf(t, err))

	c.Quantity = "5"
	_, err = inventory.ValidateMovement(c, 0)
	assert.Equal(t, domain.CodeMissingReason, codeOf(t, err))

	c.Reason = "ok"
	_, err = inventory.ValidateMovement(c, 0)
	assert.Equal(t, domain.CodeInsufficientStock, codeOf(t, err))
}

func TestValidateInput_TipoOProductoInvalido(t *testing.T) {
	c := validCandidate()
	c.Type = "ajuste"
	_, err := inventory.ValidateInput(c)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c = validCandidate()
	c.ProductID = ""
	_, err = inventory.ValidateInput(c)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
