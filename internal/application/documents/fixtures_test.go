package documents_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
	"github.com/jhoicas/erp-stock/internal/infrastructure/memory"
	"github.com/jhoicas/erp-stock/pkg/logger"
)

const testActor = "00000000-0000-0000-0000-000000000001"

// fixture arma el grafo completo de casos de uso sobre repositorios en
// memoria, con maestros sembrados:
//
//	bodega w1: loc-a (pick+recv), loc-b (pick+recv), loc-recv (solo recv), loc-pick (solo pick)
//	bodega w2: loc-c (pick+recv)
//	unidades: und (entera), kg (decimal)
//	productos: p1 (sin lotes, und), p2 (con lotes, und; lote b1)
type fixture struct {
	stores      repository.Stores
	receipts    *documents.GoodsReceiptUseCase
	issues      *documents.StockIssueUseCase
	transfers   *documents.StockTransferUseCase
	adjustments *documents.StockAdjustmentUseCase
	counts      *documents.CycleCountUseCase
	orders      *documents.PurchaseOrderUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	stores := store.Stores()
	tx := memory.NewTxRunner(store)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	engine := documents.NewPostingEngine(tx, log)

	require.NoError(t, stores.Uoms.Create(&entity.UnitMeasure{ID: "und", Code: "UND", Name: "Unidad"}))
	require.NoError(t, stores.Uoms.Create(&entity.UnitMeasure{ID: "kg", Code: "KG", Name: "Kilogramo", IsDecimal: true}))

	require.NoError(t, stores.Warehouses.Create(&entity.Warehouse{ID: "w1", Code: "BOD-1", Name: "Principal"}))
	require.NoError(t, stores.Warehouses.Create(&entity.Warehouse{ID: "w2", Code: "BOD-2", Name: "Sucursal"}))
	for _, loc := range []*entity.Location{
		{ID: "loc-a", WarehouseID: "w1", Code: "A", IsPickable: true, IsReceivable: true},
		{ID: "loc-b", WarehouseID: "w1", Code: "B", IsPickable: true, IsReceivable: true},
		{ID: "loc-recv", WarehouseID: "w1", Code: "RECV", IsReceivable: true},
		{ID: "loc-pick", WarehouseID: "w1", Code: "PICK", IsPickable: true},
		{ID: "loc-c", WarehouseID: "w2", Code: "C", IsPickable: true, IsReceivable: true},
	} {
		require.NoError(t, stores.Locations.Create(loc))
	}

	require.NoError(t, stores.Products.Create(&entity.Product{
		ID: "p1", SKU: "SKU-1", Name: "Tornillo", DefaultUomID: "und",
		ReorderPoint: decimal.NewFromInt(5),
	}))
	require.NoError(t, stores.Products.Create(&entity.Product{
		ID: "p2", SKU: "SKU-2", Name: "Reactivo", IsBatchTracked: true, DefaultUomID: "und",
	}))
	require.NoError(t, stores.Batches.Create(&entity.Batch{ID: "b1", ProductID: "p2", Code: "L-001"}))

	return &fixture{
		stores:      stores,
		receipts:    documents.NewGoodsReceiptUseCase(tx, stores, engine),
		issues:      documents.NewStockIssueUseCase(tx, stores, engine),
		transfers:   documents.NewStockTransferUseCase(tx, stores, engine),
		adjustments: documents.NewStockAdjustmentUseCase(tx, stores, engine),
		counts:      documents.NewCycleCountUseCase(tx, stores, engine),
		orders:      documents.NewPurchaseOrderUseCase(tx, stores),
	}
}

// setLevel siembra una fila de existencias directamente (estado previo).
func (f *fixture) setLevel(t *testing.T, productID, locationID string, batchID *string, onHand int64) {
	t.Helper()
	require.NoError(t, f.stores.StockLevels.Upsert(&entity.StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		BatchID:    batchID,
		OnHand:     decimal.NewFromInt(onHand),
		Reserved:   decimal.Zero,
		UpdatedAt:  time.Now(),
	}))
}

// onHand lee la existencia actual de una clave.
func (f *fixture) onHand(t *testing.T, productID, locationID string, batchID *string) decimal.Decimal {
	t.Helper()
	level, err := f.stores.StockLevels.Get(productID, locationID, batchID)
	require.NoError(t, err)
	return level.OnHand
}

// movementsOf lista los movimientos generados por un documento.
func (f *fixture) movementsOf(t *testing.T, docType entity.DocumentType, docID string) []*entity.StockMovement {
	t.Helper()
	movs, err := f.stores.Movements.ListByReference(entity.MovementReference{Type: docType, DocumentID: docID})
	require.NoError(t, err)
	return movs
}
