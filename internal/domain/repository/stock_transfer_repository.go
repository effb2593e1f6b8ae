package repository

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// StockTransferRepository define el puerto de persistencia para traslados.
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
	// GetForUpdate carga con lock exclusivo del encabezado (recarga del posteo).
	GetForUpdate(id string) (*entity.StockTransfer, error)
	Save(transfer *entity.StockTransfer) error
	SetPostError(id, message string) error
	ExistsByNumber(number string) (bool, error)
	List(limit, offset int) ([]*entity.StockTransfer, error)
}
