package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	UnitMeasureUC   *usecase.UnitMeasureUseCase
	BatchUC         *usecase.BatchUseCase
	StockQueryUC    *stock.QueryUseCase
	GoodsReceiptUC  *documents.GoodsReceiptUseCase
	StockIssueUC    *documents.StockIssueUseCase
	TransferUC      *documents.StockTransferUseCase
	AdjustmentUC    *documents.StockAdjustmentUseCase
	CycleCountUC    *documents.CycleCountUseCase
	PurchaseOrderUC *documents.PurchaseOrderUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)

	// Warehouses y ubicaciones (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/:id/locations", warehouseHandler.AddLocation)
	warehouses.Get("/:id/locations", warehouseHandler.ListLocations)

	// Unidades de medida (protegido)
	uoms := protected.Group("/uoms")
	uomHandler := NewUnitMeasureHandler(deps.UnitMeasureUC)
	uoms.Post("/", uomHandler.Create)
	uoms.Get("/:id", uomHandler.GetByID)

	// Lotes (protegido)
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/product/:productId", batchHandler.ListByProduct)

	// Consultas de existencias y ledger (protegido, solo lectura)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockQueryUC)
	stockGroup.Get("/levels", stockHandler.GetLevel)
	stockGroup.Get("/levels/product/:productId", stockHandler.ListLevelsByProduct)
	stockGroup.Get("/levels/location/:locationId", stockHandler.ListLevelsByLocation)
	stockGroup.Get("/movements/reference/:docType/:docId", stockHandler.ListMovementsByReference)
	stockGroup.Get("/movements/product/:productId", stockHandler.ListMovementsByProduct)
	stockGroup.Get("/movements/location/:locationId", stockHandler.ListMovementsByLocation)
	stockGroup.Get("/reorder-list", stockHandler.GetReorderList)

	// Recepciones de mercancía (protegido)
	receipts := protected.Group("/goods-receipts")
	receiptHandler := NewGoodsReceiptHandler(deps.GoodsReceiptUC)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Post("/:id/lines", receiptHandler.AddLine)
	receipts.Delete("/:id/lines/:lineId", receiptHandler.RemoveLine)
	receipts.Post("/:id/post", receiptHandler.Post)

	// Salidas de inventario (protegido)
	issues := protected.Group("/stock-issues")
	issueHandler := NewStockIssueHandler(deps.StockIssueUC)
	issues.Post("/", issueHandler.Create)
	issues.Get("/", issueHandler.List)
	issues.Get("/:id", issueHandler.GetByID)
	issues.Post("/:id/lines", issueHandler.AddLine)
	issues.Delete("/:id/lines/:lineId", issueHandler.RemoveLine)
	issues.Post("/:id/post", issueHandler.Post)

	// Traslados (protegido)
	transfers := protected.Group("/stock-transfers")
	transferHandler := NewStockTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/lines", transferHandler.AddLine)
	transfers.Delete("/:id/lines/:lineId", transferHandler.RemoveLine)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
	transfers.Post("/:id/post", transferHandler.Post)

	// Ajustes (protegido)
	adjustments := protected.Group("/stock-adjustments")
	adjustmentHandler := NewStockAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/lines", adjustmentHandler.AddLine)
	adjustments.Delete("/:id/lines/:lineId", adjustmentHandler.RemoveLine)
	adjustments.Post("/:id/post", adjustmentHandler.Post)

	// Conteos cíclicos (protegido)
	counts := protected.Group("/cycle-counts")
	countHandler := NewCycleCountHandler(deps.CycleCountUC)
	counts.Post("/", countHandler.Create)
	counts.Get("/", countHandler.List)
	counts.Get("/:id", countHandler.GetByID)
	counts.Post("/:id/lines", countHandler.AddLine)
	counts.Delete("/:id/lines/:lineId", countHandler.RemoveLine)
	counts.Post("/:id/start", countHandler.Start)
	counts.Post("/:id/count", countHandler.RecordCount)
	counts.Post("/:id/complete", countHandler.Complete)
	counts.Post("/:id/post", countHandler.Post)

	// Órdenes de compra (protegido)
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/lines", orderHandler.AddLine)
	orders.Delete("/:id/lines/:lineId", orderHandler.RemoveLine)
	orders.Post("/:id/confirm", orderHandler.Confirm)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/close", orderHandler.Close)
}
