package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelDTO existencia actual de una clave (producto, ubicación, lote).
type StockLevelDTO struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	BatchID    *string         `json:"batch_id,omitempty"`
	OnHand     decimal.Decimal `json:"on_hand"`
	Reserved   decimal.Decimal `json:"reserved"`
	Available  decimal.Decimal `json:"available"`
}

// StockMovementDTO entrada del ledger en respuestas.
type StockMovementDTO struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	ProductID      string          `json:"product_id"`
	UomID          string          `json:"uom_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	FromLocationID *string         `json:"from_location_id,omitempty"`
	ToLocationID   *string         `json:"to_location_id,omitempty"`
	BatchID        *string         `json:"batch_id,omitempty"`
	ReferenceType  string          `json:"reference_type"`
	ReferenceID    string          `json:"reference_id"`
	Note           string          `json:"note,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ReorderItemDTO fila del reporte de reposición.
type ReorderItemDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}
