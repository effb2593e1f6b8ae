package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/application/usecase"
	"github.com/jhoicas/erp-stock/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/erp-stock/internal/interfaces/http"
	"github.com/jhoicas/erp-stock/pkg/config"
	"github.com/jhoicas/erp-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stores := postgres.NewStores(pool)
	txRunner := postgres.NewTxRunner(pool)
	engine := documents.NewPostingEngine(txRunner, log)

	productUC := usecase.NewProductUseCase(stores.Products, stores.Uoms)
	warehouseUC := usecase.NewWarehouseUseCase(stores.Warehouses, stores.Locations)
	uomUC := usecase.NewUnitMeasureUseCase(stores.Uoms)
	batchUC := usecase.NewBatchUseCase(stores.Batches, stores.Products)
	stockQueryUC := stock.NewQueryUseCase(stores.StockLevels, stores.Movements)

	receiptUC := documents.NewGoodsReceiptUseCase(txRunner, stores, engine)
	issueUC := documents.NewStockIssueUseCase(txRunner, stores, engine)
	transferUC := documents.NewStockTransferUseCase(txRunner, stores, engine)
	adjustmentUC := documents.NewStockAdjustmentUseCase(txRunner, stores, engine)
	countUC := documents.NewCycleCountUseCase(txRunner, stores, engine)
	orderUC := documents.NewPurchaseOrderUseCase(txRunner, stores)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		WarehouseUC:     warehouseUC,
		UnitMeasureUC:   uomUC,
		BatchUC:         batchUC,
		StockQueryUC:    stockQueryUC,
		GoodsReceiptUC:  receiptUC,
		StockIssueUC:    issueUC,
		TransferUC:      transferUC,
		AdjustmentUC:    adjustmentUC,
		CycleCountUC:    countUC,
		PurchaseOrderUC: orderUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
