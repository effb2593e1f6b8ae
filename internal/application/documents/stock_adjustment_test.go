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

func TestStockAdjustment_PositivoYNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 10)
	f.setLevel(t, "p1", "loc-b", nil, 10)

	adj, err := f.adjustments.Create(ctx, documents.CreateStockAdjustmentInput{
		WarehouseID: "w1",
		Reason:      "conciliación mensual",
		Lines: []documents.StockAdjustmentLineInput{
			{ProductID: "p1", LocationID: "loc-a", QtyDelta: decimal.NewFromInt(3)},
			{ProductID: "p1", LocationID: "loc-b", QtyDelta: decimal.NewFromInt(-4)},
		},
	}, testActor)
	require.NoError(t, err)
	assert.Regexp(t, `^ADJ-\d{8}-[0-9A-F]{6}$`, adj.Number)

	// SystemQty quedó congelada al crear la línea.
	assert.True(t, adj.Lines[0].SystemQty.Equal(decimal.NewFromInt(10)))

	require.NoError(t, f.adjustments.Post(ctx, adj.ID, testActor))
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(13)))
	assert.True(t, f.onHand(t, "p1", "loc-b", nil).Equal(decimal.NewFromInt(6)))

	movs := f.movementsOf(t, entity.DocumentTypeStockAdjustment, adj.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementKindAdjustPos, movs[0].Kind)
	assert.Equal(t, entity.MovementKindAdjustNeg, movs[1].Kind)
	// Ambos guardan magnitud positiva; el tipo lleva la dirección.
	assert.True(t, movs[1].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestStockAdjustment_DeltaCeroRechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.adjustments.Create(ctx, documents.CreateStockAdjustmentInput{
		WarehouseID: "w1",
		Lines: []documents.StockAdjustmentLineInput{
			{ProductID: "p1", LocationID: "loc-a", QtyDelta: decimal.Zero},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockAdjustment_NegativoSinStockRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 10)
	f.setLevel(t, "p1", "loc-b", nil, 1)

	adj, err := f.adjustments.Create(ctx, documents.CreateStockAdjustmentInput{
		WarehouseID: "w1",
		Lines: []documents.StockAdjustmentLineInput{
			{ProductID: "p1", LocationID: "loc-a", QtyDelta: decimal.NewFromInt(2)},
			{ProductID: "p1", LocationID: "loc-b", QtyDelta: decimal.NewFromInt(-3)},
		},
	}, testActor)
	require.NoError(t, err)

	err = f.adjustments.Post(ctx, adj.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni la línea positiva se aplicó.
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(10)))
	assert.True(t, f.onHand(t, "p1", "loc-b", nil).Equal(decimal.NewFromInt(1)))
	assert.Empty(t, f.movementsOf(t, entity.DocumentTypeStockAdjustment, adj.ID))
}
