package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	IsBatchTracked bool            `json:"is_batch_tracked"`
	StandardCost   decimal.Decimal `json:"standard_cost"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	DefaultUomID   string          `json:"default_uom_id"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	IsBatchTracked bool            `json:"is_batch_tracked"`
	StandardCost   decimal.Decimal `json:"standard_cost"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	DefaultUomID   string          `json:"default_uom_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateWarehouseRequest alta de bodega.
type CreateWarehouseRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// WarehouseResponse bodega en respuestas.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLocationRequest alta de ubicación dentro de una bodega.
type CreateLocationRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	IsPickable   bool   `json:"is_pickable"`
	IsReceivable bool   `json:"is_receivable"`
}

// LocationResponse ubicación en respuestas.
type LocationResponse struct {
	ID           string `json:"id"`
	WarehouseID  string `json:"warehouse_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	IsPickable   bool   `json:"is_pickable"`
	IsReceivable bool   `json:"is_receivable"`
}

// CreateUnitMeasureRequest alta de unidad de medida.
type CreateUnitMeasureRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDecimal bool   `json:"is_decimal"`
}

// UnitMeasureResponse unidad de medida en respuestas.
type UnitMeasureResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDecimal bool   `json:"is_decimal"`
}

// CreateBatchRequest alta de lote para un producto.
type CreateBatchRequest struct {
	ProductID string     `json:"product_id"`
	Code      string     `json:"code"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// BatchResponse lote en respuestas.
type BatchResponse struct {
	ID        string     `json:"id"`
	ProductID string     `json:"product_id"`
	Code      string     `json:"code"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
