package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (maestro).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// UpdateCost actualiza el costo promedio ponderado tras una entrada.
	UpdateCost(id string, cost decimal.Decimal) error
}
