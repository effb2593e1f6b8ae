package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock/internal/application/stock"
	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/repository"
	"github.com/jhoicas/erp-stock/internal/infrastructure/memory"
)

// seedStores arma un juego de repositorios en memoria con maestros mínimos:
// una unidad entera, un producto sin lotes y uno con lotes.
func seedStores(t *testing.T) repository.Stores {
	t.Helper()
	s := memory.NewStore().Stores()

	require.NoError(t, s.Uoms.Create(&entity.UnitMeasure{ID: "und", Code: "UND", Name: "Unidad"}))
	require.NoError(t, s.Products.Create(&entity.Product{ID: "p1", SKU: "SKU-1", Name: "Tornillo", DefaultUomID: "und"}))
	require.NoError(t, s.Products.Create(&entity.Product{ID: "p2", SKU: "SKU-2", Name: "Reactivo", IsBatchTracked: true, DefaultUomID: "und"}))
	require.NoError(t, s.Batches.Create(&entity.Batch{ID: "b1", ProductID: "p2", Code: "L-001"}))
	return s
}

func setLevel(t *testing.T, s repository.Stores, productID, locationID string, onHand, reserved int64) {
	t.Helper()
	require.NoError(t, s.StockLevels.Upsert(&entity.StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		OnHand:     decimal.NewFromInt(onHand),
		Reserved:   decimal.NewFromInt(reserved),
		UpdatedAt:  time.Now(),
	}))
}

func TestAdjustOnHand_NuncaNegativo(t *testing.T) {
	s := seedStores(t)
	setLevel(t, s, "p1", "loc1", 5, 0)

	_, err := stock.AdjustOnHand(s, "p1", "loc1", nil, decimal.NewFromInt(-6), time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	level, err := s.StockLevels.Get("p1", "loc1", nil)
	require.NoError(t, err)
	assert.True(t, level.OnHand.Equal(decimal.NewFromInt(5)), "el rechazo no debe tocar la fila")
}

func TestAdjustOnHand_RespetaReserva(t *testing.T) {
	s := seedStores(t)
	setLevel(t, s, "p1", "loc1", 10, 4)

	// 10 - 7 = 3 < 4 reservadas.
	_, err := stock.AdjustOnHand(s, "p1", "loc1", nil, decimal.NewFromInt(-7), time.Now())
	assert.ErrorIs(t, err, domain.ErrReservedExceedsOnHand)

	level, err := stock.AdjustOnHand(s, "p1", "loc1", nil, decimal.NewFromInt(-6), time.Now())
	require.NoError(t, err)
	assert.True(t, level.OnHand.Equal(decimal.NewFromInt(4)))
}

func TestAdjustOnHand_CreaFilaEnPrimerMovimiento(t *testing.T) {
	s := seedStores(t)

	level, err := stock.AdjustOnHand(s, "p1", "locNueva", nil, decimal.NewFromInt(3), time.Now())
	require.NoError(t, err)
	assert.True(t, level.OnHand.Equal(decimal.NewFromInt(3)))
	assert.True(t, level.Reserved.IsZero())
}

func TestAdjustReserved_Limites(t *testing.T) {
	s := seedStores(t)
	setLevel(t, s, "p1", "loc1", 5, 0)

	_, err := stock.AdjustReserved(s, "p1", "loc1", nil, decimal.NewFromInt(6), time.Now())
	assert.ErrorIs(t, err, domain.ErrReservedExceedsOnHand)

	level, err := stock.AdjustReserved(s, "p1", "loc1", nil, decimal.NewFromInt(5), time.Now())
	require.NoError(t, err)
	assert.True(t, level.Reserved.Equal(decimal.NewFromInt(5)))

	_, err = stock.AdjustReserved(s, "p1", "loc1", nil, decimal.NewFromInt(-6), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_ReglasDeForma(t *testing.T) {
	s := seedStores(t)
	loc := "loc1"
	ref := entity.MovementReference{Type: entity.DocumentTypeStockIssue, DocumentID: "doc1"}

	// Salida sin origen.
	_, err := stock.Record(s, stock.MovementInput{
		Kind: entity.MovementKindIssue, ProductID: "p1", UomID: "und",
		Quantity: decimal.NewFromInt(1), Reference: ref, Actor: "u1",
	}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Entrada sin destino.
	_, err = stock.Record(s, stock.MovementInput{
		Kind: entity.MovementKindReceipt, ProductID: "p1", UomID: "und",
		Quantity: decimal.NewFromInt(1), Reference: ref, Actor: "u1",
	}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Traslado con origen y destino iguales.
	_, err = stock.Record(s, stock.MovementInput{
		Kind: entity.MovementKindTransferOut, ProductID: "p1", UomID: "und",
		Quantity: decimal.NewFromInt(1), FromLocationID: &loc, ToLocationID: &loc,
		Reference: ref, Actor: "u1",
	}, time.Now())
	assert.ErrorIs(t, err, domain.ErrSameLocation)

	// Tipo fuera de la taxonomía.
	_, err = stock.Record(s, stock.MovementInput{
		Kind: entity.MovementKind("SALE"), ProductID: "p1", UomID: "und",
		Quantity: decimal.NewFromInt(1), FromLocationID: &loc, Reference: ref, Actor: "u1",
	}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_ReglaDeLote(t *testing.T) {
	s := seedStores(t)
	loc := "loc1"
	ref := entity.MovementReference{Type: entity.DocumentTypeGoodsReceipt, DocumentID: "doc1"}

	// Producto con lotes sin lote en el movimiento.
	_, err := stock.Record(s, stock.MovementInput{
		Kind: entity.MovementKindReceipt, ProductID: "p2", UomID: "und",
		Quantity: decimal.NewFromInt(1), ToLocationID: &loc, Reference: ref, Actor: "u1",
	}, time.Now())
	assert.ErrorIs(t, err, domain.ErrBatchRequired)

	// Con su lote pasa y afecta la fila con lote.
	b1 := "b1"
	mov, err := stock.Record(s, stock.MovementInput{
		Kind: entity.MovementKindReceipt, ProductID: "p2", UomID: "und",
		Quantity: decimal.NewFromInt(2), ToLocationID: &loc, BatchID: &b1,
		Reference: ref, Actor: "u1",
	}, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, mov.ID)

	level, err := s.StockLevels.Get("p2", loc, &b1)
	require.NoError(t, err)
	assert.True(t, level.OnHand.Equal(decimal.NewFromInt(2)))
}

func TestRecord_MagnitudPositivaYLedgerInmutable(t *testing.T) {
	s := seedStores(t)
	loc := "loc1"
	setLevel(t, s, "p1", loc, 10, 0)
	ref := entity.MovementReference{Type: entity.DocumentTypeStockIssue, DocumentID: "doc1"}

	mov, err := stock.Record(s, stock.MovementInput{
		Kind: entity.MovementKindIssue, ProductID: "p1", UomID: "und",
		Quantity: decimal.NewFromInt(4), FromLocationID: &loc, Reference: ref, Actor: "u1",
	}, time.Now())
	require.NoError(t, err)

	// La entrada del ledger guarda la magnitud, no el signo.
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(4)))

	level, err := s.StockLevels.Get("p1", loc, nil)
	require.NoError(t, err)
	assert.True(t, level.OnHand.Equal(decimal.NewFromInt(6)))

	got, err := s.Movements.ListByReference(ref)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entity.MovementKindIssue, got[0].Kind)
}
