package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/application/dto"
)

// CycleCountHandler maneja las peticiones HTTP de conteos cíclicos.
type CycleCountHandler struct {
	uc *documents.CycleCountUseCase
}

// NewCycleCountHandler construye el handler.
func NewCycleCountHandler(uc *documents.CycleCountUseCase) *CycleCountHandler {
	return &CycleCountHandler{uc: uc}
}

// Create programa un conteo cíclico con sus claves a contar.
func (h *CycleCountHandler) Create(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.CreateCycleCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	count, err := h.uc.Create(c.Context(), toCycleCountInput(in), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCycleCountResponse(count))
}

// List devuelve conteos paginados.
func (h *CycleCountHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	counts, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.CycleCountResponse, 0, len(counts))
	for _, cc := range counts {
		out = append(out, toCycleCountResponse(cc))
	}
	return c.JSON(out)
}

// GetByID devuelve un conteo con sus líneas activas.
func (h *CycleCountHandler) GetByID(c *fiber.Ctx) error {
	count, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCycleCountResponse(count))
}

// AddLine agrega una clave a contar (solo mientras el conteo es editable).
func (h *CycleCountHandler) AddLine(c *fiber.Ctx) error {
	var in dto.CycleCountLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	count, err := h.uc.AddLine(c.Context(), c.Params("id"), toCycleCountLineInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCycleCountResponse(count))
}

// RemoveLine marca una línea como borrada.
func (h *CycleCountHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Start pasa el conteo a IN_PROGRESS y congela la cantidad de sistema de cada
// línea como referencia para la varianza.
func (h *CycleCountHandler) Start(c *fiber.Ctx) error {
	if err := h.uc.Start(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	count, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCycleCountResponse(count))
}

// RecordCount registra la cantidad física contada de una línea.
func (h *CycleCountHandler) RecordCount(c *fiber.Ctx) error {
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.RecordCount(c.Context(), c.Params("id"), in.LineID, in.CountedQty); err != nil {
		return respondError(c, err)
	}
	count, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCycleCountResponse(count))
}

// Complete cierra la captura: exige que todas las líneas activas tengan
// cantidad contada.
func (h *CycleCountHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.Complete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	count, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCycleCountResponse(count))
}

// Post postea el conteo: cada línea con varianza distinta de cero genera un
// COUNT_CORRECTION; las de varianza cero no generan movimiento.
func (h *CycleCountHandler) Post(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return unauthorized(c)
	}
	if err := h.uc.Post(c.Context(), c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	count, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCycleCountResponse(count))
}

func toCycleCountInput(in dto.CreateCycleCountRequest) documents.CreateCycleCountInput {
	out := documents.CreateCycleCountInput{
		WarehouseID:  in.WarehouseID,
		ScheduledFor: in.ScheduledFor,
		Notes:        in.Notes,
	}
	for _, l := range in.Lines {
		out.Lines = append(out.Lines, toCycleCountLineInput(l))
	}
	return out
}

func toCycleCountLineInput(in dto.CycleCountLineRequest) documents.CycleCountLineInput {
	return documents.CycleCountLineInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		BatchID:    in.BatchID,
		UomID:      in.UomID,
	}
}
