package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock/internal/application/dto"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// WarehouseUseCase casos de uso de bodegas y sus ubicaciones.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
	locations  repository.LocationRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouses repository.WarehouseRepository, locations repository.LocationRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses, locations: locations}
}

// Create crea una bodega nueva.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouses.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// List devuelve bodegas paginadas.
func (uc *WarehouseUseCase) List(limit, offset int) ([]*dto.WarehouseResponse, error) {
	list, err := uc.warehouses.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, toWarehouseResponse(w))
	}
	return out, nil
}

// AddLocation crea una ubicación dentro de la bodega.
func (uc *WarehouseUseCase) AddLocation(warehouseID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouses.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	location := &entity.Location{
		ID:           uuid.New().String(),
		WarehouseID:  warehouseID,
		Code:         in.Code,
		Name:         in.Name,
		IsPickable:   in.IsPickable,
		IsReceivable: in.IsReceivable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.locations.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// ListLocations devuelve las ubicaciones de una bodega.
func (uc *WarehouseUseCase) ListLocations(warehouseID string) ([]*dto.LocationResponse, error) {
	list, err := uc.locations.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLocationResponse(l))
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
	}
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:           l.ID,
		WarehouseID:  l.WarehouseID,
		Code:         l.Code,
		Name:         l.Name,
		IsPickable:   l.IsPickable,
		IsReceivable: l.IsReceivable,
	}
}
