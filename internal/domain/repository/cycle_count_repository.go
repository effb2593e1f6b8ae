package repository

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// CycleCountRepository define el puerto de persistencia para conteos cíclicos.
type CycleCountRepository interface {
	Create(count *entity.CycleCount) error
	GetByID(id string) (*entity.CycleCount, error)
	// GetForUpdate carga con lock exclusivo del encabezado (recarga del posteo).
	GetForUpdate(id string) (*entity.CycleCount, error)
	Save(count *entity.CycleCount) error
	SetPostError(id, message string) error
	ExistsByNumber(number string) (bool, error)
	List(limit, offset int) ([]*entity.CycleCount, error)
}
