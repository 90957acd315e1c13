package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("error de persistencia")
)

// ValidationCode identifica la regla de validación de movimientos que falló.
type ValidationCode string

const (
	CodeInvalidEmployeeID ValidationCode = "INVALID_EMPLOYEE_ID"
	CodeInvalidQuantity   ValidationCode = "INVALID_QUANTITY"
	CodeMissingReason     ValidationCode = "MISSING_REASON"
	CodeInsufficientStock ValidationCode = "INSUFFICIENT_STOCK"
)

// ValidationError rechazo corregible por el usuario. Available solo se llena con INSUFFICIENT_STOCK.
type ValidationError struct {
	Code      ValidationCode
	Message   string
	Available int64
}

func (e *ValidationError) Error() string {
	if e.Code == CodeInsufficientStock {
		return fmt.Sprintf("%s: %s (disponible %d)", e.Code, e.Message, e.Available)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is permite errors.Is(err, ErrInsufficientStock) y errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	if e.Code == CodeInsufficientStock {
		return target == ErrInsufficientStock
	}
	return target == ErrInvalidInput
}

// NewValidationError construye un rechazo de validación.
func NewValidationError(code ValidationCode, msg string) *ValidationError {
	return &ValidationError{Code: code, Message: msg}
}

// InsufficientStock rechazo de salida que reporta la cantidad disponible.
func InsufficientStock(available int64) *ValidationError {
	return &ValidationError{
		Code:      CodeInsufficientStock,
		Message:   "la cantidad solicitada supera el stock disponible",
		Available: available,
	}
}

// PersistenceError falla de lectura o escritura en el almacenamiento. No se reintenta.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Persistence envuelve err como PersistenceError. Devuelve nil si err es nil y no re-envuelve
// errores de dominio conocidos (validación, no encontrado, duplicado).
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var pe *PersistenceError
	switch {
	case errors.As(err, &ve), errors.As(err, &pe),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate):
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
