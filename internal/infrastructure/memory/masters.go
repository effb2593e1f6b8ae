package memory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct{ s *Store }

func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.s.productsSKU[product.SKU]; ok {
		return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, product.SKU)
	}
	r.s.products[product.ID] = cloneProduct(product)
	r.s.productsSKU[product.SKU] = product.ID
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if id, ok := r.s.productsSKU[sku]; ok {
		return cloneProduct(r.s.products[id]), nil
	}
	return nil, nil
}

func (r *productRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StandardCost = cost
	return nil
}

var _ repository.WarehouseRepository = (*warehouseRepo)(nil)

type warehouseRepo struct{ s *Store }

func (r *warehouseRepo) Create(warehouse *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if warehouse.ID == "" {
		warehouse.ID = uuid.New().String()
	}
	r.s.warehouses[warehouse.ID] = cloneWarehouse(warehouse)
	return nil
}

func (r *warehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.warehouses[id]; ok {
		return cloneWarehouse(w), nil
	}
	return nil, nil
}

func (r *warehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Warehouse
	for _, w := range r.s.warehouses {
		all = append(all, cloneWarehouse(w))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return paginate(all, limit, offset), nil
}

var _ repository.LocationRepository = (*locationRepo)(nil)

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(location *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	r.s.locations[location.ID] = cloneLocation(location)
	return nil
}

func (r *locationRepo) GetByID(id string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.locations[id]; ok {
		return cloneLocation(l), nil
	}
	return nil, nil
}

func (r *locationRepo) ListByWarehouse(warehouseID string) ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Location
	for _, l := range r.s.locations {
		if l.WarehouseID == warehouseID {
			list = append(list, cloneLocation(l))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

var _ repository.UnitMeasureRepository = (*uomRepo)(nil)

type uomRepo struct{ s *Store }

func (r *uomRepo) Create(uom *entity.UnitMeasure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if uom.ID == "" {
		uom.ID = uuid.New().String()
	}
	r.s.uoms[uom.ID] = cloneUom(uom)
	return nil
}

func (r *uomRepo) GetByID(id string) (*entity.UnitMeasure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.uoms[id]; ok {
		return cloneUom(u), nil
	}
	return nil, nil
}

var _ repository.BatchRepository = (*batchRepo)(nil)

type batchRepo struct{ s *Store }

func (r *batchRepo) Create(batch *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	r.s.batches[batch.ID] = cloneBatch(batch)
	return nil
}

func (r *batchRepo) GetByID(id string) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.batches[id]; ok {
		return cloneBatch(b), nil
	}
	return nil, nil
}

func (r *batchRepo) ListByProduct(productID string) ([]*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Batch
	for _, b := range r.s.batches {
		if b.ProductID == productID {
			list = append(list, cloneBatch(b))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
