package documents_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

func TestGoodsReceipt_CrearYPostear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID: "w1",
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(100)},
		},
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, entity.GoodsReceiptStatusDraft, receipt.Status)
	assert.Regexp(t, `^GR-\d{8}-[0-9A-F]{6}$`, receipt.Number)

	require.NoError(t, f.receipts.Post(ctx, receipt.ID, testActor))

	posted, err := f.receipts.Get(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoodsReceiptStatusPosted, posted.Status)
	require.NotNil(t, posted.PostedBy)
	assert.Equal(t, testActor, *posted.PostedBy)

	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(10)))

	movs := f.movementsOf(t, entity.DocumentTypeGoodsReceipt, receipt.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindReceipt, movs[0].Kind)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(10)))

	// Costo promedio: sin stock previo el costo pasa a ser el de la entrada.
	product, err := f.stores.Products.GetByID("p1")
	require.NoError(t, err)
	assert.True(t, product.StandardCost.Equal(decimal.NewFromInt(100)))
}

func TestGoodsReceipt_PosteoEsAtMostOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID: "w1",
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(10)},
		},
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.receipts.Post(ctx, receipt.ID, testActor))

	// El reintento ve el documento ya sellado y no duplica movimientos.
	err = f.receipts.Post(ctx, receipt.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, f.movementsOf(t, entity.DocumentTypeGoodsReceipt, receipt.ID), 1)
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(5)))
}

func TestGoodsReceipt_PosteoConcurrenteDelMismoDocumento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID: "w1",
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(10)},
		},
	}, testActor)
	require.NoError(t, err)

	// Dos posteos simultáneos del mismo borrador: la recarga con lock dentro
	// de la tx obliga al que llega segundo a ver el documento ya sellado.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.receipts.Post(ctx, receipt.ID, testActor)
		}(i)
	}
	wg.Wait()

	var ok, sealed int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInvalidState):
			sealed++
		}
	}
	assert.Equal(t, 1, ok, "exactamente un posteo debe ganar")
	assert.Equal(t, 1, sealed, "el otro debe ver el documento sellado")
	assert.Len(t, f.movementsOf(t, entity.DocumentTypeGoodsReceipt, receipt.ID), 1)
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(5)))
}

func TestGoodsReceipt_PrimerosMovimientosConcurrentesClaveNueva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Dos recepciones al mismo par (producto, ubicación) que aún no tiene
	// fila de existencias: ninguna puede pisar la cantidad de la otra.
	quantities := []int64{5, 7}
	receipts := make([]string, len(quantities))
	for i, q := range quantities {
		r, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
			WarehouseID: "w1",
			Lines: []documents.GoodsReceiptLineInput{
				{ProductID: "p1", LocationID: "loc-b", UomID: "und", Quantity: decimal.NewFromInt(q), UnitCost: decimal.NewFromInt(10)},
			},
		}, testActor)
		require.NoError(t, err)
		receipts[i] = r.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, len(receipts))
	for i, id := range receipts {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = f.receipts.Post(ctx, id, testActor)
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.True(t, f.onHand(t, "p1", "loc-b", nil).Equal(decimal.NewFromInt(12)),
		"la clave nueva debe acumular ambas entradas")
}

func TestGoodsReceipt_ReglasDeLinea(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Producto con lotes exige lote en la línea.
	_, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID: "w1",
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p2", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(1)},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrBatchRequired)

	// Ubicación que no recibe.
	_, err = f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID: "w1",
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-pick", UomID: "und", Quantity: decimal.NewFromInt(1)},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrLocationNotReceivable)

	// Ubicación de otra bodega.
	_, err = f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID: "w1",
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-c", UomID: "und", Quantity: decimal.NewFromInt(1)},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrWarehouseMismatch)

	// Cantidad fraccionaria en unidad entera.
	_, err = f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID: "w1",
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.RequireFromString("1.5")},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrFractionalQuantity)
}

func TestGoodsReceipt_SinLineasActivasNoPostea(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{WarehouseID: "w1"}, testActor)
	require.NoError(t, err)

	err = f.receipts.Post(ctx, receipt.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrNoActiveLines)

	// La causa queda adjunta al documento y el borrador sigue usable.
	draft, err := f.receipts.Get(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.GoodsReceiptStatusDraft, draft.Status)
	require.NotNil(t, draft.LastPostError)
}

func TestGoodsReceipt_InmutableTrasPostear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID: "w1",
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(2), UnitCost: decimal.Zero},
		},
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.receipts.Post(ctx, receipt.ID, testActor))

	_, err = f.receipts.AddLine(ctx, receipt.ID, documents.GoodsReceiptLineInput{
		ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrImmutableDocument)

	posted, _ := f.receipts.Get(receipt.ID)
	err = f.receipts.RemoveLine(ctx, receipt.ID, posted.Lines[0].ID)
	assert.ErrorIs(t, err, domain.ErrImmutableDocument)
}

func TestGoodsReceipt_ContraOrdenDeCompra(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, documents.CreatePurchaseOrderInput{
		SupplierID: "prov-1",
		Lines: []documents.PurchaseOrderLineInput{
			{ProductID: "p1", UomID: "und", OrderedQty: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(80)},
		},
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.orders.Confirm(ctx, order.ID))

	order, err = f.orders.Get(order.ID)
	require.NoError(t, err)
	poLine := order.Lines[0].ID

	receipt, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID:     "w1",
		PurchaseOrderID: &order.ID,
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(6), UnitCost: decimal.NewFromInt(80), POLineID: &poLine},
		},
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.receipts.Post(ctx, receipt.ID, testActor))

	// La orden acumuló lo recibido en la misma transacción.
	order, err = f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusPartiallyReceived, order.Status)
	assert.True(t, order.Lines[0].ReceivedQty.Equal(decimal.NewFromInt(6)))

	// Una segunda recepción que supera lo ordenado revierte completa:
	// ni movimiento, ni stock, ni acumulado.
	over, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID:     "w1",
		PurchaseOrderID: &order.ID,
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(80), POLineID: &poLine},
		},
	}, testActor)
	require.NoError(t, err)

	err = f.receipts.Post(ctx, over.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrOverReceipt)
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(6)))
	assert.Empty(t, f.movementsOf(t, entity.DocumentTypeGoodsReceipt, over.ID))

	order, err = f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.True(t, order.Lines[0].ReceivedQty.Equal(decimal.NewFromInt(6)))

	// Recibir el resto exacto completa la orden.
	rest, err := f.receipts.Create(ctx, documents.CreateGoodsReceiptInput{
		WarehouseID:     "w1",
		PurchaseOrderID: &order.ID,
		Lines: []documents.GoodsReceiptLineInput{
			{ProductID: "p1", LocationID: "loc-a", UomID: "und", Quantity: decimal.NewFromInt(4), UnitCost: decimal.NewFromInt(80), POLineID: &poLine},
		},
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.receipts.Post(ctx, rest.ID, testActor))

	order, err = f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusReceived, order.Status)
	require.NoError(t, f.orders.Close(ctx, order.ID))
}
