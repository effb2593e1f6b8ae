package stock

import (
	"time"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// QueryUseCase expone las consultas de solo lectura del núcleo: existencias
// por clave, ledger por referencia y lista de reposición. Consumidas por
// dashboards, MRP y vistas de auditoría (colaboradores externos).
type QueryUseCase struct {
	levels    repository.StockLevelRepository
	movements repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(levels repository.StockLevelRepository, movements repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{levels: levels, movements: movements}
}

// Level devuelve la existencia de una clave (producto, ubicación, lote).
// Si la clave no ha tenido movimientos devuelve la fila en cero, nunca nil.
func (uc *QueryUseCase) Level(productID, locationID string, batchID *string) (*entity.StockLevel, error) {
	if productID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.levels.Get(productID, locationID, batchID)
}

// LevelsByProduct lista las existencias de un producto en todas las ubicaciones.
func (uc *QueryUseCase) LevelsByProduct(productID string) ([]*entity.StockLevel, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.levels.ListByProduct(productID)
}

// LevelsByLocation lista las existencias presentes en una ubicación.
func (uc *QueryUseCase) LevelsByLocation(locationID string) ([]*entity.StockLevel, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.levels.ListByLocation(locationID)
}

// MovementsByReference devuelve los movimientos generados por un documento
// (vista de impresión/auditoría).
func (uc *QueryUseCase) MovementsByReference(docType entity.DocumentType, docID string) ([]*entity.StockMovement, error) {
	if !docType.Valid() || docID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movements.ListByReference(entity.MovementReference{Type: docType, DocumentID: docID})
}

// MovementsByProduct devuelve el historial de movimientos de un producto,
// del más reciente al más antiguo, con rango de fechas opcional.
func (uc *QueryUseCase) MovementsByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movements.ListByProduct(productID, from, to, limit, offset)
}

// MovementsByLocation devuelve el historial de movimientos que tocaron una
// ubicación, del más reciente al más antiguo.
func (uc *QueryUseCase) MovementsByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movements.ListByLocation(locationID, from, to, limit, offset)
}

// ReorderList devuelve los productos por debajo de su punto de reorden.
func (uc *QueryUseCase) ReorderList() ([]repository.ReorderItem, error) {
	return uc.levels.ListBelowReorderPoint()
}
