package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock/internal/application/dto"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// UnitMeasureUseCase casos de uso de unidades de medida.
type UnitMeasureUseCase struct {
	uoms repository.UnitMeasureRepository
}

// NewUnitMeasureUseCase construye el caso de uso.
func NewUnitMeasureUseCase(uoms repository.UnitMeasureRepository) *UnitMeasureUseCase {
	return &UnitMeasureUseCase{uoms: uoms}
}

// Create crea una unidad de medida nueva.
func (uc *UnitMeasureUseCase) Create(in dto.CreateUnitMeasureRequest) (*dto.UnitMeasureResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	uom := &entity.UnitMeasure{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		IsDecimal: in.IsDecimal,
		CreatedAt: time.Now(),
	}
	if err := uc.uoms.Create(uom); err != nil {
		return nil, err
	}
	return toUnitMeasureResponse(uom), nil
}

// GetByID obtiene una unidad de medida por ID.
func (uc *UnitMeasureUseCase) GetByID(id string) (*dto.UnitMeasureResponse, error) {
	uom, err := uc.uoms.GetByID(id)
	if err != nil {
		return nil, err
	}
	if uom == nil {
		return nil, domain.ErrNotFound
	}
	return toUnitMeasureResponse(uom), nil
}

func toUnitMeasureResponse(u *entity.UnitMeasure) *dto.UnitMeasureResponse {
	return &dto.UnitMeasureResponse{
		ID:        u.ID,
		Code:      u.Code,
		Name:      u.Name,
		IsDecimal: u.IsDecimal,
	}
}
