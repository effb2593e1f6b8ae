package repository

import (
	"time"

	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger de
// movimientos. Append-only: no existen Update ni Delete; las correcciones se
// hacen posteando movimientos compensatorios.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByReference devuelve los movimientos originados por un documento
	// (vistas de impresión y auditoría).
	ListByReference(ref entity.MovementReference) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
