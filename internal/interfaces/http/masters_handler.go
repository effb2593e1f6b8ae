package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/dto"
	"github.com/jhoicas/erp-stock/internal/application/usecase"
)

// UnitMeasureHandler maneja las peticiones HTTP de unidades de medida.
type UnitMeasureHandler struct {
	uc *usecase.UnitMeasureUseCase
}

// NewUnitMeasureHandler construye el handler.
func NewUnitMeasureHandler(uc *usecase.UnitMeasureUseCase) *UnitMeasureHandler {
	return &UnitMeasureHandler{uc: uc}
}

// Create da de alta una unidad de medida.
func (h *UnitMeasureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUnitMeasureRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve una unidad de medida por su ID.
func (h *UnitMeasureHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BatchHandler maneja las peticiones HTTP de lotes.
type BatchHandler struct {
	uc *usecase.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *usecase.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create da de alta un lote para un producto con manejo de lotes.
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProduct devuelve los lotes de un producto.
func (h *BatchHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
