package documents

import (
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
	domstock "github.com/jhoicas/erp-stock/internal/domain/stock"
)

// lineMasters agrupa los maestros resueltos de una línea.
type lineMasters struct {
	Product *entity.Product
	Batch   *entity.Batch // nil si la línea no trae lote
	Uom     *entity.UnitMeasure
}

// loadLineMasters resuelve producto, lote y unidad de medida de una línea y
// aplica la regla de lote (obligatorio sii el producto maneja lotes, y del
// mismo producto). Si uomID viene vacío se usa la unidad por defecto del
// producto.
func loadLineMasters(s repository.Stores, productID string, batchID *string, uomID string) (*lineMasters, error) {
	product, err := s.Products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	var batch *entity.Batch
	if batchID != nil {
		batch, err = s.Batches.GetByID(*batchID)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			return nil, domain.ErrNotFound
		}
	}
	if err := domstock.ValidateBatch(product, batch); err != nil {
		return nil, err
	}
	if uomID == "" {
		uomID = product.DefaultUomID
	}
	uom, err := s.Uoms.GetByID(uomID)
	if err != nil {
		return nil, err
	}
	if uom == nil {
		return nil, domain.ErrNotFound
	}
	return &lineMasters{Product: product, Batch: batch, Uom: uom}, nil
}

// loadLocation resuelve una ubicación y valida que pertenezca a la bodega.
func loadLocation(s repository.Stores, locationID, warehouseID string) (*entity.Location, error) {
	loc, err := s.Locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if err := domstock.ValidateLocationInWarehouse(loc, warehouseID); err != nil {
		return nil, err
	}
	return loc, nil
}

// loadWarehouse verifica que la bodega exista.
func loadWarehouse(s repository.Stores, warehouseID string) (*entity.Warehouse, error) {
	wh, err := s.Warehouses.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}
