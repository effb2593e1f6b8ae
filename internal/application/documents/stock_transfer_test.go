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

func TestStockTransfer_ConservaElTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 10)

	transfer, err := f.transfers.Create(ctx, documents.CreateStockTransferInput{
		FromWarehouseID: "w1",
		ToWarehouseID:   "w2",
		Lines: []documents.StockTransferLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", ToLocationID: "loc-c", Quantity: decimal.NewFromInt(4)},
		},
	}, testActor)
	require.NoError(t, err)
	assert.Regexp(t, `^TR-\d{8}-[0-9A-F]{6}$`, transfer.Number)

	require.NoError(t, f.transfers.Post(ctx, transfer.ID, testActor))

	from := f.onHand(t, "p1", "loc-a", nil)
	to := f.onHand(t, "p1", "loc-c", nil)
	assert.True(t, from.Equal(decimal.NewFromInt(6)))
	assert.True(t, to.Equal(decimal.NewFromInt(4)))
	assert.True(t, from.Add(to).Equal(decimal.NewFromInt(10)), "el traslado no crea ni destruye existencias")

	// Un traslado posteado son dos movimientos emparejados.
	movs := f.movementsOf(t, entity.DocumentTypeStockTransfer, transfer.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementKindTransferOut, movs[0].Kind)
	assert.Equal(t, entity.MovementKindTransferIn, movs[1].Kind)
}

func TestStockTransfer_MismaUbicacionRechazada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.transfers.Create(ctx, documents.CreateStockTransferInput{
		FromWarehouseID: "w1",
		ToWarehouseID:   "w1",
		Lines: []documents.StockTransferLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", ToLocationID: "loc-a", Quantity: decimal.NewFromInt(1)},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrSameLocation)
}

func TestStockTransfer_RevalidaUbicacionesAlPostear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 10)

	transfer, err := f.transfers.Create(ctx, documents.CreateStockTransferInput{
		FromWarehouseID: "w1",
		ToWarehouseID:   "w2",
		Lines: []documents.StockTransferLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", ToLocationID: "loc-c", Quantity: decimal.NewFromInt(4)},
		},
	}, testActor)
	require.NoError(t, err)

	// El origen deja de ser pickeable después de crear el borrador: el
	// posteo revalida y rechaza, sin tocar existencias.
	require.NoError(t, f.stores.Locations.Create(&entity.Location{
		ID: "loc-a", WarehouseID: "w1", Code: "A", IsReceivable: true,
	}))

	err = f.transfers.Post(ctx, transfer.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrLocationNotPickable)
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(10)))
	assert.Empty(t, f.movementsOf(t, entity.DocumentTypeStockTransfer, transfer.ID))

	draft, err := f.transfers.Get(transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockTransferStatusDraft, draft.Status)
}

func TestStockTransfer_SinStockRevierteCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 2)

	transfer, err := f.transfers.Create(ctx, documents.CreateStockTransferInput{
		FromWarehouseID: "w1",
		ToWarehouseID:   "w2",
		Lines: []documents.StockTransferLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", ToLocationID: "loc-c", Quantity: decimal.NewFromInt(5)},
		},
	}, testActor)
	require.NoError(t, err)

	err = f.transfers.Post(ctx, transfer.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(2)))
	assert.True(t, f.onHand(t, "p1", "loc-c", nil).IsZero())
	assert.Empty(t, f.movementsOf(t, entity.DocumentTypeStockTransfer, transfer.ID))
}

func TestStockTransfer_Cancelar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 10)

	transfer, err := f.transfers.Create(ctx, documents.CreateStockTransferInput{
		FromWarehouseID: "w1",
		ToWarehouseID:   "w2",
		Lines: []documents.StockTransferLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", ToLocationID: "loc-c", Quantity: decimal.NewFromInt(4)},
		},
	}, testActor)
	require.NoError(t, err)

	require.NoError(t, f.transfers.Cancel(ctx, transfer.ID))
	cancelled, err := f.transfers.Get(transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockTransferStatusCancelled, cancelled.Status)

	// Cancelado no postea.
	err = f.transfers.Post(ctx, transfer.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Posteado no se cancela: se compensa con un traslado inverso.
	other, err := f.transfers.Create(ctx, documents.CreateStockTransferInput{
		FromWarehouseID: "w1",
		ToWarehouseID:   "w2",
		Lines: []documents.StockTransferLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", ToLocationID: "loc-c", Quantity: decimal.NewFromInt(2)},
		},
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.transfers.Post(ctx, other.ID, testActor))
	assert.ErrorIs(t, f.transfers.Cancel(ctx, other.ID), domain.ErrInvalidState)
}

func TestStockTransfer_ConLote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := "b1"
	f.setLevel(t, "p2", "loc-a", &b1, 6)

	transfer, err := f.transfers.Create(ctx, documents.CreateStockTransferInput{
		FromWarehouseID: "w1",
		ToWarehouseID:   "w2",
		Lines: []documents.StockTransferLineInput{
			{ProductID: "p2", FromLocationID: "loc-a", ToLocationID: "loc-c", BatchID: &b1, Quantity: decimal.NewFromInt(6)},
		},
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.transfers.Post(ctx, transfer.ID, testActor))

	// La fila origen queda en cero pero no desaparece.
	assert.True(t, f.onHand(t, "p2", "loc-a", &b1).IsZero())
	assert.True(t, f.onHand(t, "p2", "loc-c", &b1).Equal(decimal.NewFromInt(6)))
}
