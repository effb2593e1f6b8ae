package repository

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// BatchRepository define el puerto de persistencia para Batch (lotes).
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	ListByProduct(productID string) ([]*entity.Batch, error)
}
