package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// IsBatchTracked obliga a que todo movimiento del producto lleve lote.
// StandardCost alimenta el costeo; el stock por ubicación vive en StockLevel.
type Product struct {
	ID             string
	SKU            string // código único
	Name           string
	Description    string
	IsBatchTracked bool
	StandardCost   decimal.Decimal
	ReorderPoint   decimal.Decimal
	DefaultUomID   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
