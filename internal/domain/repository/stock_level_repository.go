package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

// StockLevelRepository define el puerto para consultar y actualizar existencias
// por (producto, ubicación, lote). Get y GetForUpdate devuelven una fila en
// cero cuando la clave no existe todavía, nunca nil: los callers hacen
// aritmética sin ambigüedad de ausencia.
type StockLevelRepository interface {
	Get(productID, locationID string, batchID *string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); serializa
	// movimientos concurrentes sobre la misma clave sin bloquear claves ajenas.
	GetForUpdate(productID, locationID string, batchID *string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	ListByProduct(productID string) ([]*entity.StockLevel, error)
	ListByLocation(locationID string) ([]*entity.StockLevel, error)
	// ListBelowReorderPoint devuelve productos cuyo stock agregado está por
	// debajo de su punto de reorden (consulta de solo lectura para reposición).
	ListBelowReorderPoint() ([]ReorderItem, error)
}

// ReorderItem es una fila del reporte de reposición.
type ReorderItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	CurrentStock decimal.Decimal
	ReorderPoint decimal.Decimal
}
