package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock/internal/application/dto"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// ProductUseCase casos de uso del maestro de productos.
type ProductUseCase struct {
	products repository.ProductRepository
	uoms     repository.UnitMeasureRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, uoms repository.UnitMeasureRepository) *ProductUseCase {
	return &ProductUseCase{products: products, uoms: uoms}
}

// Create crea un producto nuevo. La unidad por defecto debe existir.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.DefaultUomID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.StandardCost.IsNegative() || in.ReorderPoint.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	uom, err := uc.uoms.GetByID(in.DefaultUomID)
	if err != nil {
		return nil, err
	}
	if uom == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Name:           in.Name,
		Description:    in.Description,
		IsBatchTracked: in.IsBatchTracked,
		StandardCost:   in.StandardCost,
		ReorderPoint:   in.ReorderPoint,
		DefaultUomID:   in.DefaultUomID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetBySKU obtiene un producto por SKU.
func (uc *ProductUseCase) GetBySKU(sku string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		IsBatchTracked: p.IsBatchTracked,
		StandardCost:   p.StandardCost,
		ReorderPoint:   p.ReorderPoint,
		DefaultUomID:   p.DefaultUomID,
		CreatedAt:      p.CreatedAt,
	}
}
