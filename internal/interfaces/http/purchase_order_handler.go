package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/application/dto"
)

// PurchaseOrderHandler maneja las peticiones HTTP de órdenes de compra.
// La orden no postea al ledger: su recepción ocurre vía recepciones de
// mercancía ligadas a ella.
type PurchaseOrderHandler struct {
	uc *documents.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *documents.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create crea una orden de compra en borrador.
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Create(c.Context(), toPurchaseOrderInput(in), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(order))
}

// List devuelve órdenes paginadas.
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	orders, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toPurchaseOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID devuelve una orden con sus líneas activas.
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(order))
}

// AddLine agrega una línea a una orden en borrador.
func (h *PurchaseOrderHandler) AddLine(c *fiber.Ctx) error {
	var in dto.PurchaseOrderLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.AddLine(c.Context(), c.Params("id"), toPurchaseOrderLineInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(order))
}

// RemoveLine marca una línea como borrada (solo en borrador).
func (h *PurchaseOrderHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Confirm pasa la orden de DRAFT a CONFIRMED; desde ahí admite recepciones.
func (h *PurchaseOrderHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Confirm)
}

// Cancel cancela una orden que aún no ha recibido mercancía.
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

// Close cierra la orden; las cantidades pendientes dejan de esperarse.
func (h *PurchaseOrderHandler) Close(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Close)
}

// transition ejecuta un cambio de estado y devuelve la orden resultante.
func (h *PurchaseOrderHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, orderID string) error) error {
	if err := fn(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	order, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(order))
}

func toPurchaseOrderInput(in dto.CreatePurchaseOrderRequest) documents.CreatePurchaseOrderInput {
	out := documents.CreatePurchaseOrderInput{
		SupplierID: in.SupplierID,
		Notes:      in.Notes,
	}
	for _, l := range in.Lines {
		out.Lines = append(out.Lines, toPurchaseOrderLineInput(l))
	}
	return out
}

func toPurchaseOrderLineInput(in dto.PurchaseOrderLineRequest) documents.PurchaseOrderLineInput {
	return documents.PurchaseOrderLineInput{
		ProductID:  in.ProductID,
		UomID:      in.UomID,
		OrderedQty: in.OrderedQty,
		UnitPrice:  in.UnitPrice,
	}
}
