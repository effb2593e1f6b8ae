package repository

import "github.com/jhoicas/erp-stock/internal/domain/entity"

// UnitMeasureRepository define el puerto de persistencia para UnitMeasure.
type UnitMeasureRepository interface {
	Create(uom *entity.UnitMeasure) error
	GetByID(id string) (*entity.UnitMeasure, error)
}
