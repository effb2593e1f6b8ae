package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/application/dto"
)

// GoodsReceiptHandler maneja las peticiones HTTP de recepciones de mercancía.
type GoodsReceiptHandler struct {
	uc *documents.GoodsReceiptUseCase
}

// NewGoodsReceiptHandler construye el handler.
func NewGoodsReceiptHandler(uc *documents.GoodsReceiptUseCase) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{uc: uc}
}

// Create crea una recepción en borrador.
func (h *GoodsReceiptHandler) Create(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.CreateGoodsReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	receipt, err := h.uc.Create(c.Context(), toGoodsReceiptInput(in), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toGoodsReceiptResponse(receipt))
}

// List devuelve recepciones paginadas.
func (h *GoodsReceiptHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	receipts, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.GoodsReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, toGoodsReceiptResponse(r))
	}
	return c.JSON(out)
}

// GetByID devuelve una recepción con sus líneas activas.
func (h *GoodsReceiptHandler) GetByID(c *fiber.Ctx) error {
	receipt, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toGoodsReceiptResponse(receipt))
}

// AddLine agrega una línea a una recepción en borrador.
func (h *GoodsReceiptHandler) AddLine(c *fiber.Ctx) error {
	var in dto.GoodsReceiptLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	receipt, err := h.uc.AddLine(c.Context(), c.Params("id"), toGoodsReceiptLineInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toGoodsReceiptResponse(receipt))
}

// RemoveLine marca una línea como borrada (solo en borrador).
func (h *GoodsReceiptHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Post postea la recepción: genera los movimientos RECEIPT y sella el
// documento. Idempotente frente a reintentos: un documento ya posteado
// responde 422.
func (h *GoodsReceiptHandler) Post(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	if err := h.uc.Post(c.Context(), c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	receipt, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toGoodsReceiptResponse(receipt))
}

func toGoodsReceiptInput(in dto.CreateGoodsReceiptRequest) documents.CreateGoodsReceiptInput {
	out := documents.CreateGoodsReceiptInput{
		WarehouseID:     in.WarehouseID,
		PurchaseOrderID: in.PurchaseOrderID,
		Notes:           in.Notes,
	}
	for _, l := range in.Lines {
		out.Lines = append(out.Lines, toGoodsReceiptLineInput(l))
	}
	return out
}

func toGoodsReceiptLineInput(in dto.GoodsReceiptLineRequest) documents.GoodsReceiptLineInput {
	return documents.GoodsReceiptLineInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		BatchID:    in.BatchID,
		UomID:      in.UomID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		POLineID:   in.POLineID,
	}
}
