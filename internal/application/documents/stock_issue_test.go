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

func TestStockIssue_CrearYPostear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 8)

	issue, err := f.issues.Create(ctx, documents.CreateStockIssueInput{
		WarehouseID: "w1",
		Reason:      "consumo interno",
		Lines: []documents.StockIssueLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", Quantity: decimal.NewFromInt(3)},
		},
	}, testActor)
	require.NoError(t, err)
	assert.Regexp(t, `^SI-\d{8}-[0-9A-F]{6}$`, issue.Number)

	require.NoError(t, f.issues.Post(ctx, issue.ID, testActor))
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(5)))

	movs := f.movementsOf(t, entity.DocumentTypeStockIssue, issue.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindIssue, movs[0].Kind)
}

func TestStockIssue_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 2)

	issue, err := f.issues.Create(ctx, documents.CreateStockIssueInput{
		WarehouseID: "w1",
		Lines: []documents.StockIssueLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", Quantity: decimal.NewFromInt(5)},
		},
	}, testActor)
	require.NoError(t, err)

	err = f.issues.Post(ctx, issue.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada salió y el borrador queda con la causa registrada.
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(2)))
	draft, err := f.issues.Get(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockIssueStatusDraft, draft.Status)
	require.NotNil(t, draft.LastPostError)
	assert.Empty(t, f.movementsOf(t, entity.DocumentTypeStockIssue, issue.ID))
}

func TestStockIssue_TodoONada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 10)
	f.setLevel(t, "p1", "loc-b", nil, 1)

	// Segunda línea insuficiente: la primera tampoco debe salir.
	issue, err := f.issues.Create(ctx, documents.CreateStockIssueInput{
		WarehouseID: "w1",
		Lines: []documents.StockIssueLineInput{
			{ProductID: "p1", FromLocationID: "loc-a", Quantity: decimal.NewFromInt(4)},
			{ProductID: "p1", FromLocationID: "loc-b", Quantity: decimal.NewFromInt(3)},
		},
	}, testActor)
	require.NoError(t, err)

	err = f.issues.Post(ctx, issue.ID, testActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(10)))
	assert.True(t, f.onHand(t, "p1", "loc-b", nil).Equal(decimal.NewFromInt(1)))
}

func TestStockIssue_UbicacionSoloRecepcion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.issues.Create(ctx, documents.CreateStockIssueInput{
		WarehouseID: "w1",
		Lines: []documents.StockIssueLineInput{
			{ProductID: "p1", FromLocationID: "loc-recv", Quantity: decimal.NewFromInt(1)},
		},
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrLocationNotPickable)
}

// Dos salidas de 5 compitiendo por 8 en existencia: exactamente una gana.
func TestStockIssue_Concurrencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.setLevel(t, "p1", "loc-a", nil, 8)

	makeIssue := func() string {
		issue, err := f.issues.Create(ctx, documents.CreateStockIssueInput{
			WarehouseID: "w1",
			Lines: []documents.StockIssueLineInput{
				{ProductID: "p1", FromLocationID: "loc-a", Quantity: decimal.NewFromInt(5)},
			},
		}, testActor)
		require.NoError(t, err)
		return issue.ID
	}
	ids := []string{makeIssue(), makeIssue()}

	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = f.issues.Post(ctx, id, testActor)
		}(i, id)
	}
	wg.Wait()

	var failed int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, failed, "exactamente una de las dos salidas debe fallar")
	assert.True(t, f.onHand(t, "p1", "loc-a", nil).Equal(decimal.NewFromInt(3)))
}
