package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// NewStores construye el bundle completo de repositorios sobre un Querier
// (pool para lecturas sueltas, tx para una unidad de trabajo).
func NewStores(q Querier) repository.Stores {
	return repository.Stores{
		Products:    NewProductRepository(q),
		Warehouses:  NewWarehouseRepository(q),
		Locations:   NewLocationRepository(q),
		Uoms:        NewUnitMeasureRepository(q),
		Batches:     NewBatchRepository(q),
		StockLevels: NewStockLevelRepository(q),
		Movements:   NewStockMovementRepository(q),
		Receipts:    NewGoodsReceiptRepository(q),
		Issues:      NewStockIssueRepository(q),
		Transfers:   NewStockTransferRepository(q),
		Adjustments: NewStockAdjustmentRepository(q),
		CycleCounts: NewCycleCountRepository(q),
		Orders:      NewPurchaseOrderRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con los repos atados a la tx y hace
// Commit o Rollback. Los conflictos de concurrencia se traducen a
// domain.ErrTxConflict para que el caller pueda reintentar.
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStores(tx)); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
