package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/application/dto"
)

// StockAdjustmentHandler maneja las peticiones HTTP de ajustes de inventario.
type StockAdjustmentHandler struct {
	uc *documents.StockAdjustmentUseCase
}

// NewStockAdjustmentHandler construye el handler.
func NewStockAdjustmentHandler(uc *documents.StockAdjustmentUseCase) *StockAdjustmentHandler {
	return &StockAdjustmentHandler{uc: uc}
}

// Create crea un ajuste en borrador.
func (h *StockAdjustmentHandler) Create(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.CreateStockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	adj, err := h.uc.Create(c.Context(), toStockAdjustmentInput(in), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockAdjustmentResponse(adj))
}

// List devuelve ajustes paginados.
func (h *StockAdjustmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	adjustments, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.StockAdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, toStockAdjustmentResponse(a))
	}
	return c.JSON(out)
}

// GetByID devuelve un ajuste con sus líneas activas.
func (h *StockAdjustmentHandler) GetByID(c *fiber.Ctx) error {
	adj, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockAdjustmentResponse(adj))
}

// AddLine agrega una línea a un ajuste en borrador.
func (h *StockAdjustmentHandler) AddLine(c *fiber.Ctx) error {
	var in dto.StockAdjustmentLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	adj, err := h.uc.AddLine(c.Context(), c.Params("id"), toStockAdjustmentLineInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockAdjustmentResponse(adj))
}

// RemoveLine marca una línea como borrada (solo en borrador).
func (h *StockAdjustmentHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Post postea el ajuste: cada línea genera ADJUST_POS o ADJUST_NEG según el
// signo de qty_delta.
func (h *StockAdjustmentHandler) Post(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	if err := h.uc.Post(c.Context(), c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	adj, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockAdjustmentResponse(adj))
}

func toStockAdjustmentInput(in dto.CreateStockAdjustmentRequest) documents.CreateStockAdjustmentInput {
	out := documents.CreateStockAdjustmentInput{
		WarehouseID: in.WarehouseID,
		Reason:      in.Reason,
	}
	for _, l := range in.Lines {
		out.Lines = append(out.Lines, toStockAdjustmentLineInput(l))
	}
	return out
}

func toStockAdjustmentLineInput(in dto.StockAdjustmentLineRequest) documents.StockAdjustmentLineInput {
	return documents.StockAdjustmentLineInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		BatchID:    in.BatchID,
		QtyDelta:   in.QtyDelta,
	}
}
