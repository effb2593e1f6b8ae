package repository

// Stores agrupa los repositorios atados a una misma unidad de trabajo.
// Un TxRunner construye un Stores ligado a la transacción y lo pasa al
// callback; todo lo que se toque a través de él se confirma o revierte junto.
type Stores struct {
	Products     ProductRepository
	Warehouses   WarehouseRepository
	Locations    LocationRepository
	Uoms         UnitMeasureRepository
	Batches      BatchRepository
	StockLevels  StockLevelRepository
	Movements    StockMovementRepository
	Receipts     GoodsReceiptRepository
	Issues       StockIssueRepository
	Transfers    StockTransferRepository
	Adjustments  StockAdjustmentRepository
	CycleCounts  CycleCountRepository
	Orders       PurchaseOrderRepository
}
