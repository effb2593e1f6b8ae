package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
	"github.com/jhoicas/erp-stock/internal/domain/stock"
)

func TestValidateBatch(t *testing.T) {
	tracked := &entity.Product{ID: "p1", IsBatchTracked: true}
	plain := &entity.Product{ID: "p2", IsBatchTracked: false}
	batch := &entity.Batch{ID: "b1", ProductID: "p1"}
	ajeno := &entity.Batch{ID: "b2", ProductID: "otro"}

	assert.NoError(t, stock.ValidateBatch(tracked, batch))
	assert.ErrorIs(t, stock.ValidateBatch(tracked, nil), domain.ErrBatchRequired)
	assert.ErrorIs(t, stock.ValidateBatch(tracked, ajeno), domain.ErrBatchProductMismatch)
	assert.NoError(t, stock.ValidateBatch(plain, nil))
	assert.ErrorIs(t, stock.ValidateBatch(plain, batch), domain.ErrBatchNotAllowed)
}

func TestValidateQuantity(t *testing.T) {
	unidades := &entity.UnitMeasure{ID: "und", IsDecimal: false}
	kilos := &entity.UnitMeasure{ID: "kg", IsDecimal: true}

	assert.NoError(t, stock.ValidateQuantity(unidades, decimal.NewFromInt(3)))
	assert.NoError(t, stock.ValidateQuantity(kilos, decimal.RequireFromString("2.5")))
	assert.ErrorIs(t, stock.ValidateQuantity(unidades, decimal.RequireFromString("2.5")), domain.ErrFractionalQuantity)
	assert.ErrorIs(t, stock.ValidateQuantity(unidades, decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, stock.ValidateQuantity(kilos, decimal.NewFromInt(-1)), domain.ErrInvalidInput)
}

func TestValidateDelta(t *testing.T) {
	unidades := &entity.UnitMeasure{ID: "und", IsDecimal: false}

	assert.NoError(t, stock.ValidateDelta(unidades, decimal.NewFromInt(-4)))
	assert.NoError(t, stock.ValidateDelta(unidades, decimal.NewFromInt(7)))
	assert.ErrorIs(t, stock.ValidateDelta(unidades, decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, stock.ValidateDelta(unidades, decimal.RequireFromString("-1.5")), domain.ErrFractionalQuantity)
}

func TestValidateLocations(t *testing.T) {
	loc := &entity.Location{ID: "l1", WarehouseID: "w1", IsPickable: true, IsReceivable: false}

	assert.NoError(t, stock.ValidateLocationInWarehouse(loc, "w1"))
	assert.ErrorIs(t, stock.ValidateLocationInWarehouse(loc, "w2"), domain.ErrWarehouseMismatch)
	assert.NoError(t, stock.ValidatePickable(loc))
	assert.ErrorIs(t, stock.ValidateReceivable(loc), domain.ErrLocationNotReceivable)
}

func TestWeightedAverageCost(t *testing.T) {
	// (10 * 100 + 5 * 130) / 15 = 110
	got := stock.WeightedAverageCost(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(5), decimal.NewFromInt(130),
	)
	require.True(t, got.Equal(decimal.NewFromInt(110)), "esperaba 110, obtuve %s", got)

	// Sin stock previo el costo es directamente el de la entrada.
	got = stock.WeightedAverageCost(decimal.Zero, decimal.Zero, decimal.NewFromInt(4), decimal.NewFromInt(25))
	assert.True(t, got.Equal(decimal.NewFromInt(25)))

	// Sin cantidades no hay división por cero.
	got = stock.WeightedAverageCost(decimal.Zero, decimal.NewFromInt(9), decimal.Zero, decimal.NewFromInt(9))
	assert.True(t, got.IsZero())
}
