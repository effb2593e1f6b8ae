package documents_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

func TestPurchaseOrderUseCase_Crear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, documents.CreatePurchaseOrderInput{
		SupplierID: "prov-1",
		Lines: []documents.PurchaseOrderLineInput{
			{ProductID: "p1", OrderedQty: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(250)},
		},
	}, testActor)
	require.NoError(t, err)

	assert.Regexp(t, `^PO-\d{8}-[0-9A-F]{6}$`, order.Number)
	assert.Equal(t, entity.PurchaseOrderStatusDraft, order.Status)
	require.Len(t, order.Lines, 1)
	// Sin unidad explícita se toma la del producto.
	assert.Equal(t, "und", order.Lines[0].UomID)
	assert.Equal(t, entity.POLineStatusOpen, order.Lines[0].LineStatus)
	assert.True(t, order.Lines[0].ReceivedQty.IsZero())
}

func TestPurchaseOrderUseCase_CrearInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, documents.CreatePurchaseOrderInput{}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.Create(ctx, documents.CreatePurchaseOrderInput{
		SupplierID: "prov-1",
		Lines: []documents.PurchaseOrderLineInput{
			{ProductID: "no-existe", OrderedQty: decimal.NewFromInt(1)},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Precio negativo rechazado.
	_, err = f.orders.Create(ctx, documents.CreatePurchaseOrderInput{
		SupplierID: "prov-1",
		Lines: []documents.PurchaseOrderLineInput{
			{ProductID: "p1", OrderedQty: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-10)},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad fraccionaria en unidad entera.
	_, err = f.orders.Create(ctx, documents.CreatePurchaseOrderInput{
		SupplierID: "prov-1",
		Lines: []documents.PurchaseOrderLineInput{
			{ProductID: "p1", OrderedQty: decimal.NewFromFloat(2.5)},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrFractionalQuantity)
}

func TestPurchaseOrderUseCase_LineasEnBorrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, documents.CreatePurchaseOrderInput{SupplierID: "prov-1"}, testActor)
	require.NoError(t, err)

	order, err = f.orders.AddLine(ctx, order.ID, documents.PurchaseOrderLineInput{
		ProductID: "p1", OrderedQty: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)

	require.NoError(t, f.orders.RemoveLine(ctx, order.ID, order.Lines[0].ID))
	order, err = f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Empty(t, order.ActiveLines())

	// Quitar dos veces la misma línea no encuentra nada activo.
	err = f.orders.RemoveLine(ctx, order.ID, order.Lines[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseOrderUseCase_InmutableTrasConfirmar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, documents.CreatePurchaseOrderInput{
		SupplierID: "prov-1",
		Lines: []documents.PurchaseOrderLineInput{
			{ProductID: "p1", OrderedQty: decimal.NewFromInt(10)},
		},
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.orders.Confirm(ctx, order.ID))

	_, err = f.orders.AddLine(ctx, order.ID, documents.PurchaseOrderLineInput{
		ProductID: "p1", OrderedQty: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrImmutableDocument)

	err = f.orders.RemoveLine(ctx, order.ID, order.Lines[0].ID)
	assert.ErrorIs(t, err, domain.ErrImmutableDocument)
}

func TestPurchaseOrderUseCase_Transiciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, documents.CreatePurchaseOrderInput{
		SupplierID: "prov-1",
		Lines: []documents.PurchaseOrderLineInput{
			{ProductID: "p1", OrderedQty: decimal.NewFromInt(10)},
		},
	}, testActor)
	require.NoError(t, err)

	// Cerrar sin recibir no procede.
	assert.ErrorIs(t, f.orders.Close(ctx, order.ID), domain.ErrInvalidState)

	require.NoError(t, f.orders.Confirm(ctx, order.ID))
	assert.ErrorIs(t, f.orders.Confirm(ctx, order.ID), domain.ErrInvalidState)

	require.NoError(t, f.orders.Cancel(ctx, order.ID))
	got, err := f.orders.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusCancelled, got.Status)

	// Una orden cancelada no se reconfirma.
	assert.ErrorIs(t, f.orders.Confirm(ctx, order.ID), domain.ErrInvalidState)
}

func TestPurchaseOrderUseCase_GetInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Get("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.orders.Confirm(context.Background(), "no-existe"), domain.ErrNotFound)
}
