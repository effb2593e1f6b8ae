package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock/internal/application/dto"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// BatchUseCase casos de uso de lotes.
type BatchUseCase struct {
	batches  repository.BatchRepository
	products repository.ProductRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(batches repository.BatchRepository, products repository.ProductRepository) *BatchUseCase {
	return &BatchUseCase{batches: batches, products: products}
}

// Create crea un lote para un producto con manejo de lotes.
func (uc *BatchUseCase) Create(in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.ProductID == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsBatchTracked {
		return nil, domain.ErrBatchNotAllowed
	}
	batch := &entity.Batch{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Code:      in.Code,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: time.Now(),
	}
	if err := uc.batches.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// ListByProduct devuelve los lotes de un producto.
func (uc *BatchUseCase) ListByProduct(productID string) ([]*dto.BatchResponse, error) {
	list, err := uc.batches.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:        b.ID,
		ProductID: b.ProductID,
		Code:      b.Code,
		ExpiresAt: b.ExpiresAt,
	}
}
