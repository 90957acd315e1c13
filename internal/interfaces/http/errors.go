package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// localsError guarda el error original para RequestLogger.
const localsError = "handler_error"

// respondError traduce errores de dominio a status HTTP y cuerpo ErrorResponse.
//
//	validación               → 400 con el código de la regla
//	stock insuficiente       → 409 con available
//	no encontrado            → 404
//	duplicado / conflicto    → 409
//	prohibido                → 403
//	persistencia             → 500 PERSISTENCE
//	otro                     → 500 INTERNAL
func respondError(c *fiber.Ctx, err error) error {
	c.Locals(localsError, err)
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		if ve.Code == domain.CodeInsufficientStock {
			available := ve.Available
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: string(ve.Code), Message: ve.Message, Available: &available,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: string(ve.Code), Message: ve.Message})
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la operación entra en conflicto con el estado actual"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case errors.Is(err, domain.ErrPersistence):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "no se pudo guardar, intente de nuevo"})
	}
	// El detalle queda en el log de la petición, no en la respuesta.
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
