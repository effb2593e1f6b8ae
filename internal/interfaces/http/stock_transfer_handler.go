package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/application/dto"
)

// StockTransferHandler maneja las peticiones HTTP de traslados entre ubicaciones.
type StockTransferHandler struct {
	uc *documents.StockTransferUseCase
}

// NewStockTransferHandler construye el handler.
func NewStockTransferHandler(uc *documents.StockTransferUseCase) *StockTransferHandler {
	return &StockTransferHandler{uc: uc}
}

// Create crea un traslado en borrador.
func (h *StockTransferHandler) Create(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.CreateStockTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	transfer, err := h.uc.Create(c.Context(), toStockTransferInput(in), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockTransferResponse(transfer))
}

// List devuelve traslados paginados.
func (h *StockTransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	transfers, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.StockTransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, toStockTransferResponse(t))
	}
	return c.JSON(out)
}

// GetByID devuelve un traslado con sus líneas activas.
func (h *StockTransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockTransferResponse(transfer))
}

// AddLine agrega una línea a un traslado en borrador.
func (h *StockTransferHandler) AddLine(c *fiber.Ctx) error {
	var in dto.StockTransferLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	transfer, err := h.uc.AddLine(c.Context(), c.Params("id"), toStockTransferLineInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockTransferResponse(transfer))
}

// RemoveLine marca una línea como borrada (solo en borrador).
func (h *StockTransferHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel cancela un traslado en borrador. Un traslado posteado no se cancela:
// se compensa con un traslado inverso.
func (h *StockTransferHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	transfer, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockTransferResponse(transfer))
}

// Post postea el traslado: por cada línea genera el par TRANSFER_OUT y
// TRANSFER_IN en la misma transacción, conservando el total del producto.
func (h *StockTransferHandler) Post(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	if err := h.uc.Post(c.Context(), c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	transfer, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockTransferResponse(transfer))
}

func toStockTransferInput(in dto.CreateStockTransferRequest) documents.CreateStockTransferInput {
	out := documents.CreateStockTransferInput{
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Notes:           in.Notes,
	}
	for _, l := range in.Lines {
		out.Lines = append(out.Lines, toStockTransferLineInput(l))
	}
	return out
}

func toStockTransferLineInput(in dto.StockTransferLineRequest) documents.StockTransferLineInput {
	return documents.StockTransferLineInput{
		ProductID:      in.ProductID,
		UomID:          in.UomID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		BatchID:        in.BatchID,
		Quantity:       in.Quantity,
	}
}
