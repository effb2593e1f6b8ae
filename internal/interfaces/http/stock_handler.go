package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/dto"
	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

// StockHandler maneja las consultas de existencias y del ledger de movimientos.
// Todas las rutas son de solo lectura: las cantidades solo cambian posteando
// documentos.
type StockHandler struct {
	uc *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.QueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetLevel devuelve la existencia de una clave (producto, ubicación, lote).
// Si la clave nunca tuvo movimientos responde la fila en cero.
func (h *StockHandler) GetLevel(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")
	var batchID *string
	if b := c.Query("batch_id"); b != "" {
		batchID = &b
	}
	level, err := h.uc.Level(productID, locationID, batchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockLevelDTO(level))
}

// ListLevelsByProduct lista las existencias de un producto en todas las
// ubicaciones.
func (h *StockHandler) ListLevelsByProduct(c *fiber.Ctx) error {
	levels, err := h.uc.LevelsByProduct(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockLevelDTOs(levels))
}

// ListLevelsByLocation lista las existencias presentes en una ubicación.
func (h *StockHandler) ListLevelsByLocation(c *fiber.Ctx) error {
	levels, err := h.uc.LevelsByLocation(c.Params("locationId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockLevelDTOs(levels))
}

// ListMovementsByReference devuelve los movimientos generados por un documento,
// en el orden en que se postearon.
func (h *StockHandler) ListMovementsByReference(c *fiber.Ctx) error {
	docType := entity.DocumentType(c.Params("docType"))
	movements, err := h.uc.MovementsByReference(docType, c.Params("docId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockMovementDTOs(movements))
}

// ListMovementsByProduct devuelve el historial de movimientos de un producto,
// del más reciente al más antiguo. Acepta from/to (RFC 3339) y paginación.
func (h *StockHandler) ListMovementsByProduct(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return badBody(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	movements, err := h.uc.MovementsByProduct(c.Params("productId"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockMovementDTOs(movements))
}

// ListMovementsByLocation devuelve el historial de movimientos de una ubicación.
func (h *StockHandler) ListMovementsByLocation(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return badBody(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	movements, err := h.uc.MovementsByLocation(c.Params("locationId"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockMovementDTOs(movements))
}

// GetReorderList devuelve los productos por debajo de su punto de reorden.
func (h *StockHandler) GetReorderList(c *fiber.Ctx) error {
	items, err := h.uc.ReorderList()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReorderItemDTOs(items))
}

// parseDateRange lee los query params from/to en RFC 3339; ambos opcionales.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
