package documents_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock/internal/application/documents"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

func createCount(t *testing.T, f *fixture, lines ...documents.CycleCountLineInput) *entity.CycleCount {
	t.Helper()
	count, err := f.counts.Create(context.Background(), documents.CreateCycleCountInput{
		WarehouseID:  "w1",
		ScheduledFor: time.Now().Add(24 * time.Hour),
		Lines:        lines,
	}, testActor)
	require.NoError(t, err)
	return count
}

func TestCycleCount_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 5)

	count := createCount(t, f, documents.CycleCountLineInput{ProductID: "p1", LocationID: "loc-a"})
	assert.Regexp(t, `^CC-\d{8}-[0-9A-F]{6}$`, count.Number)
	assert.Equal(t, entity.CycleCountStatusScheduled, count.Status)

	// Start congela la existencia del momento como cantidad de sistema.
	require.NoError(t, f.counts.Start(ctx, count.ID))
	started, err := f.counts.Get(count.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CycleCountStatusInProgress, started.Status)
	assert.True(t, started.Lines[0].SystemQty.Equal(decimal.NewFromInt(5)))

	// Se contaron 7: varianza +2.
	require.NoError(t, f.counts.RecordCount(ctx, count.ID, started.Lines[0].ID, decimal.NewFromInt(7)))
	require.NoError(t, f.counts.Complete(ctx, count.ID))
	require.NoError(t, f.counts.Post(ctx, count.ID, testActor))

	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(7)))
	movs := f.movementsOf(t, entity.DocumentTypeCycleCount, count.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindCountCorrection, movs[0].Kind)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(2)), "la magnitud de la varianza, sin signo")
	require.NotNil(t, movs[0].ToLocationID)
	assert.Equal(t, "loc-a", *movs[0].ToLocationID)
}

func TestCycleCount_VarianzaNegativa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 9)

	count := createCount(t, f, documents.CycleCountLineInput{ProductID: "p1", LocationID: "loc-a"})
	require.NoError(t, f.counts.Start(ctx, count.ID))
	started, _ := f.counts.Get(count.ID)

	require.NoError(t, f.counts.RecordCount(ctx, count.ID, started.Lines[0].ID, decimal.NewFromInt(6)))
	require.NoError(t, f.counts.Complete(ctx, count.ID))
	require.NoError(t, f.counts.Post(ctx, count.ID, testActor))

	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(6)))
	movs := f.movementsOf(t, entity.DocumentTypeCycleCount, count.ID)
	require.Len(t, movs, 1)
	require.NotNil(t, movs[0].FromLocationID, "varianza negativa sale de la ubicación contada")
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestCycleCount_VarianzaCeroNoGeneraMovimiento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 4)

	count := createCount(t, f, documents.CycleCountLineInput{ProductID: "p1", LocationID: "loc-a"})
	require.NoError(t, f.counts.Start(ctx, count.ID))
	started, _ := f.counts.Get(count.ID)

	require.NoError(t, f.counts.RecordCount(ctx, count.ID, started.Lines[0].ID, decimal.NewFromInt(4)))
	require.NoError(t, f.counts.Complete(ctx, count.ID))
	require.NoError(t, f.counts.Post(ctx, count.ID, testActor))

	posted, err := f.counts.Get(count.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CycleCountStatusPosted, posted.Status)
	assert.Empty(t, f.movementsOf(t, entity.DocumentTypeCycleCount, count.ID))
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(4)))
}

func TestCycleCount_Transiciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	count := createCount(t, f, documents.CycleCountLineInput{ProductID: "p1", LocationID: "loc-a"})

	// Sin iniciar no se registran conteos ni se completa.
	err := f.counts.RecordCount(ctx, count.ID, count.Lines[0].ID, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.ErrorIs(t, f.counts.Complete(ctx, count.ID), domain.ErrInvalidState)

	// Sin completar no se postea.
	require.NoError(t, f.counts.Start(ctx, count.ID))
	err = f.counts.Post(ctx, count.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Completar exige todas las líneas contadas.
	assert.ErrorIs(t, f.counts.Complete(ctx, count.ID), domain.ErrInvalidInput)

	// Iniciado ya no se agregan líneas.
	_, err = f.counts.AddLine(ctx, count.ID, documents.CycleCountLineInput{ProductID: "p1", LocationID: "loc-b"})
	assert.ErrorIs(t, err, domain.ErrImmutableDocument)
}

func TestCycleCount_ConteoFraccionarioEnUnidadEntera(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	count := createCount(t, f, documents.CycleCountLineInput{ProductID: "p1", LocationID: "loc-a"})
	require.NoError(t, f.counts.Start(ctx, count.ID))
	started, _ := f.counts.Get(count.ID)

	err := f.counts.RecordCount(ctx, count.ID, started.Lines[0].ID, decimal.RequireFromString("3.5"))
	assert.ErrorIs(t, err, domain.ErrFractionalQuantity)
}
