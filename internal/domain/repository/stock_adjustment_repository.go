package repository

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// StockAdjustmentRepository define el puerto de persistencia para ajustes.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	GetByID(id string) (*entity.StockAdjustment, error)
	// GetForUpdate carga con lock exclusivo del encabezado (recarga del posteo).
	GetForUpdate(id string) (*entity.StockAdjustment, error)
	Save(adjustment *entity.StockAdjustment) error
	SetPostError(id, message string) error
	ExistsByNumber(number string) (bool, error)
	List(limit, offset int) ([]*entity.StockAdjustment, error)
}
