package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*stockLevelRepo)(nil)

type stockLevelRepo struct{ s *Store }

// Get devuelve la fila de existencias o una en cero si la clave no existe,
// nunca nil. Mismo contrato que el adaptador PostgreSQL.
func (r *stockLevelRepo) Get(productID, locationID string, batchID *string) (*entity.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if lvl, ok := r.s.levels[keyFor(productID, locationID, batchID)]; ok {
		return cloneLevel(lvl), nil
	}
	return &entity.StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		BatchID:    clonePtr(batchID),
		OnHand:     decimal.Zero,
		Reserved:   decimal.Zero,
	}, nil
}

// GetForUpdate equivale a Get: el TxRunner en memoria ya serializa las
// transacciones completas.
func (r *stockLevelRepo) GetForUpdate(productID, locationID string, batchID *string) (*entity.StockLevel, error) {
	return r.Get(productID, locationID, batchID)
}

func (r *stockLevelRepo) Upsert(level *entity.StockLevel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cl := cloneLevel(level)
	cl.UpdatedAt = time.Now()
	r.s.levels[keyFor(level.ProductID, level.LocationID, level.BatchID)] = cl
	return nil
}

func (r *stockLevelRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	return r.filter(func(l *entity.StockLevel) bool { return l.ProductID == productID })
}

func (r *stockLevelRepo) ListByLocation(locationID string) ([]*entity.StockLevel, error) {
	return r.filter(func(l *entity.StockLevel) bool { return l.LocationID == locationID })
}

func (r *stockLevelRepo) filter(keep func(*entity.StockLevel) bool) ([]*entity.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockLevel
	for _, l := range r.s.levels {
		if keep(l) {
			list = append(list, cloneLevel(l))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProductID != list[j].ProductID {
			return list[i].ProductID < list[j].ProductID
		}
		return list[i].LocationID < list[j].LocationID
	})
	return list, nil
}

func (r *stockLevelRepo) ListBelowReorderPoint() ([]repository.ReorderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := make(map[string]decimal.Decimal)
	for _, l := range r.s.levels {
		totals[l.ProductID] = totals[l.ProductID].Add(l.OnHand)
	}
	var list []repository.ReorderItem
	for _, p := range r.s.products {
		if !p.ReorderPoint.IsPositive() {
			continue
		}
		current := totals[p.ID]
		if current.LessThan(p.ReorderPoint) {
			list = append(list, repository.ReorderItem{
				ProductID:    p.ID,
				SKU:          p.SKU,
				ProductName:  p.Name,
				CurrentStock: current,
				ReorderPoint: p.ReorderPoint,
			})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return list, nil
}

var _ repository.StockMovementRepository = (*stockMovementRepo)(nil)

type stockMovementRepo struct{ s *Store }

func (r *stockMovementRepo) Create(movement *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.s.movements[movement.ID] = cloneMovement(movement)
	r.s.movementSeq = append(r.s.movementSeq, movement.ID)
	return nil
}

func (r *stockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.movements[id]; ok {
		return cloneMovement(m), nil
	}
	return nil, nil
}

func (r *stockMovementRepo) ListByReference(ref entity.MovementReference) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockMovement
	for _, id := range r.s.movementSeq {
		m := r.s.movements[id]
		if m.Reference == ref {
			list = append(list, cloneMovement(m))
		}
	}
	return list, nil
}

func (r *stockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.listFiltered(func(m *entity.StockMovement) bool { return m.ProductID == productID }, from, to, limit, offset)
}

func (r *stockMovementRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.listFiltered(func(m *entity.StockMovement) bool {
		return (m.FromLocationID != nil && *m.FromLocationID == locationID) ||
			(m.ToLocationID != nil && *m.ToLocationID == locationID)
	}, from, to, limit, offset)
}

func (r *stockMovementRepo) listFiltered(keep func(*entity.StockMovement) bool, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockMovement
	// movementSeq en reversa: del más reciente al más antiguo.
	for i := len(r.s.movementSeq) - 1; i >= 0; i-- {
		m := r.s.movements[r.s.movementSeq[i]]
		if !keep(m) {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		list = append(list, cloneMovement(m))
	}
	return paginate(list, limit, offset), nil
}
