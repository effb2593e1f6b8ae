package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/application/dto"
)

// StockIssueHandler maneja las peticiones HTTP de salidas de inventario.
type StockIssueHandler struct {
	uc *documents.StockIssueUseCase
}

// NewStockIssueHandler construye el handler.
func NewStockIssueHandler(uc *documents.StockIssueUseCase) *StockIssueHandler {
	return &StockIssueHandler{uc: uc}
}

// Create crea una salida en borrador.
func (h *StockIssueHandler) Create(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.CreateStockIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	issue, err := h.uc.Create(c.Context(), toStockIssueInput(in), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockIssueResponse(issue))
}

// List devuelve salidas paginadas.
func (h *StockIssueHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	issues, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.StockIssueResponse, 0, len(issues))
	for _, i := range issues {
		out = append(out, toStockIssueResponse(i))
	}
	return c.JSON(out)
}

// GetByID devuelve una salida con sus líneas activas.
func (h *StockIssueHandler) GetByID(c *fiber.Ctx) error {
	issue, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockIssueResponse(issue))
}

// AddLine agrega una línea a una salida en borrador.
func (h *StockIssueHandler) AddLine(c *fiber.Ctx) error {
	var in dto.StockIssueLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	issue, err := h.uc.AddLine(c.Context(), c.Params("id"), toStockIssueLineInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockIssueResponse(issue))
}

// RemoveLine marca una línea como borrada (solo en borrador).
func (h *StockIssueHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Post postea la salida: genera los movimientos ISSUE descontando stock.
// Si alguna línea dejaría stock negativo, toda la operación se revierte.
func (h *StockIssueHandler) Post(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	if err := h.uc.Post(c.Context(), c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	issue, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockIssueResponse(issue))
}

func toStockIssueInput(in dto.CreateStockIssueRequest) documents.CreateStockIssueInput {
	out := documents.CreateStockIssueInput{
		WarehouseID: in.WarehouseID,
		Reason:      in.Reason,
	}
	for _, l := range in.Lines {
		out.Lines = append(out.Lines, toStockIssueLineInput(l))
	}
	return out
}

func toStockIssueLineInput(in dto.StockIssueLineRequest) documents.StockIssueLineInput {
	return documents.StockIssueLineInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		BatchID:        in.BatchID,
		Quantity:       in.Quantity,
	}
}
