// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con transacciones por snapshot. Se usa en pruebas de casos de uso:
// mismo contrato que el adaptador PostgreSQL, sin base de datos.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// stockKey identifica una fila de existencias: producto, ubicación y lote
// opcional ("" cuando no hay lote).
type stockKey struct {
	productID  string
	locationID string
	batchID    string
}

func keyFor(productID, locationID string, batchID *string) stockKey {
	k := stockKey{productID: productID, locationID: locationID}
	if batchID != nil {
		k.batchID = *batchID
	}
	return k
}

// Store guarda todo el estado en mapas protegidos por un mutex. Las entidades
// se clonan al entrar y al salir para que los callers no muten estado
// compartido por referencia.
type Store struct {
	mu sync.Mutex

	products    map[string]*entity.Product
	productsSKU map[string]string // sku -> id
	warehouses  map[string]*entity.Warehouse
	locations   map[string]*entity.Location
	uoms        map[string]*entity.UnitMeasure
	batches     map[string]*entity.Batch
	levels      map[stockKey]*entity.StockLevel
	movements   map[string]*entity.StockMovement
	movementSeq []string // orden de inserción del ledger
	receipts    map[string]*entity.GoodsReceipt
	issues      map[string]*entity.StockIssue
	transfers   map[string]*entity.StockTransfer
	adjustments map[string]*entity.StockAdjustment
	counts      map[string]*entity.CycleCount
	orders      map[string]*entity.PurchaseOrder
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		products:    make(map[string]*entity.Product),
		productsSKU: make(map[string]string),
		warehouses:  make(map[string]*entity.Warehouse),
		locations:   make(map[string]*entity.Location),
		uoms:        make(map[string]*entity.UnitMeasure),
		batches:     make(map[string]*entity.Batch),
		levels:      make(map[stockKey]*entity.StockLevel),
		movements:   make(map[string]*entity.StockMovement),
		receipts:    make(map[string]*entity.GoodsReceipt),
		issues:      make(map[string]*entity.StockIssue),
		transfers:   make(map[string]*entity.StockTransfer),
		adjustments: make(map[string]*entity.StockAdjustment),
		counts:      make(map[string]*entity.CycleCount),
		orders:      make(map[string]*entity.PurchaseOrder),
	}
}

// Stores devuelve el bundle de repositorios sobre este Store.
func (s *Store) Stores() repository.Stores {
	return repository.Stores{
		Products:    &productRepo{s},
		Warehouses:  &warehouseRepo{s},
		Locations:   &locationRepo{s},
		Uoms:        &uomRepo{s},
		Batches:     &batchRepo{s},
		StockLevels: &stockLevelRepo{s},
		Movements:   &stockMovementRepo{s},
		Receipts:    &goodsReceiptRepo{s},
		Issues:      &stockIssueRepo{s},
		Transfers:   &stockTransferRepo{s},
		Adjustments: &stockAdjustmentRepo{s},
		CycleCounts: &cycleCountRepo{s},
		Orders:      &purchaseOrderRepo{s},
	}
}

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner serializa transacciones completas sobre un Store y revierte por
// snapshot cuando el callback falla: todo o nada, igual que la variante SQL.
type TxRunner struct {
	store *Store
	txMu  sync.Mutex
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run toma un snapshot del estado, ejecuta fn y restaura el snapshot si fn
// devuelve error. Las transacciones corren de a una (txMu).
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := r.store.snapshot()
	if err := fn(r.store.Stores()); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// snapshot copia en profundidad todos los mapas del estado.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := NewStore()
	for k, v := range s.products {
		snap.products[k] = cloneProduct(v)
	}
	for k, v := range s.productsSKU {
		snap.productsSKU[k] = v
	}
	for k, v := range s.warehouses {
		snap.warehouses[k] = cloneWarehouse(v)
	}
	for k, v := range s.locations {
		snap.locations[k] = cloneLocation(v)
	}
	for k, v := range s.uoms {
		snap.uoms[k] = cloneUom(v)
	}
	for k, v := range s.batches {
		snap.batches[k] = cloneBatch(v)
	}
	for k, v := range s.levels {
		snap.levels[k] = cloneLevel(v)
	}
	for k, v := range s.movements {
		snap.movements[k] = cloneMovement(v)
	}
	snap.movementSeq = append([]string(nil), s.movementSeq...)
	for k, v := range s.receipts {
		snap.receipts[k] = cloneReceipt(v)
	}
	for k, v := range s.issues {
		snap.issues[k] = cloneIssue(v)
	}
	for k, v := range s.transfers {
		snap.transfers[k] = cloneTransfer(v)
	}
	for k, v := range s.adjustments {
		snap.adjustments[k] = cloneAdjustment(v)
	}
	for k, v := range s.counts {
		snap.counts[k] = cloneCount(v)
	}
	for k, v := range s.orders {
		snap.orders[k] = cloneOrder(v)
	}
	return snap
}

// restore reemplaza el estado por el del snapshot.
func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.productsSKU = snap.productsSKU
	s.warehouses = snap.warehouses
	s.locations = snap.locations
	s.uoms = snap.uoms
	s.batches = snap.batches
	s.levels = snap.levels
	s.movements = snap.movements
	s.movementSeq = snap.movementSeq
	s.receipts = snap.receipts
	s.issues = snap.issues
	s.transfers = snap.transfers
	s.adjustments = snap.adjustments
	s.counts = snap.counts
	s.orders = snap.orders
}
