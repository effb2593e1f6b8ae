package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/dto"
	"github.com/jhoicas/erp-stock/internal/domain"
)

// statusFromError traduce los errores de dominio a códigos HTTP.
// Los casos de uso envuelven los centinelas con %w, así que la comparación
// es por errors.Is y no por igualdad directa.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrTxConflict):
		return fiber.StatusConflict, "TX_CONFLICT"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrReservedExceedsOnHand):
		return fiber.StatusConflict, "RESERVED_EXCEEDS_ON_HAND"
	case errors.Is(err, domain.ErrOverReceipt):
		return fiber.StatusConflict, "OVER_RECEIPT"
	case errors.Is(err, domain.ErrFractionalQuantity):
		return fiber.StatusConflict, "FRACTIONAL_QUANTITY"
	case errors.Is(err, domain.ErrBatchRequired):
		return fiber.StatusConflict, "BATCH_REQUIRED"
	case errors.Is(err, domain.ErrBatchNotAllowed):
		return fiber.StatusConflict, "BATCH_NOT_ALLOWED"
	case errors.Is(err, domain.ErrBatchProductMismatch):
		return fiber.StatusConflict, "BATCH_PRODUCT_MISMATCH"
	case errors.Is(err, domain.ErrLocationNotPickable):
		return fiber.StatusConflict, "LOCATION_NOT_PICKABLE"
	case errors.Is(err, domain.ErrLocationNotReceivable):
		return fiber.StatusConflict, "LOCATION_NOT_RECEIVABLE"
	case errors.Is(err, domain.ErrWarehouseMismatch):
		return fiber.StatusConflict, "WAREHOUSE_MISMATCH"
	case errors.Is(err, domain.ErrSameLocation):
		return fiber.StatusConflict, "SAME_LOCATION"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusUnprocessableEntity, "INVALID_STATE"
	case errors.Is(err, domain.ErrImmutableDocument):
		return fiber.StatusUnprocessableEntity, "IMMUTABLE_DOCUMENT"
	case errors.Is(err, domain.ErrNoActiveLines):
		return fiber.StatusUnprocessableEntity, "NO_ACTIVE_LINES"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe la respuesta de error con el código HTTP del dominio.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFromError(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// badBody responde el error estándar de cuerpo JSON inválido.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// unauthorized responde cuando el middleware no dejó un actor en el contexto.
func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
