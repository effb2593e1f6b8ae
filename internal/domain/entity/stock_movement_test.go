package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

func TestMovementKind_Direction(t *testing.T) {
	outflows := []entity.MovementKind{
		entity.MovementKindIssue,
		entity.MovementKindTransferOut,
		entity.MovementKindAdjustNeg,
		entity.MovementKindProductionConsumption,
		entity.MovementKindReturnOut,
	}
	for _, k := range outflows {
		dir, fixed := k.Direction()
		assert.True(t, fixed, "%s debe tener dirección fija", k)
		assert.Equal(t, entity.DirectionOutflow, dir, "%s es salida", k)
	}

	inflows := []entity.MovementKind{
		entity.MovementKindReceipt,
		entity.MovementKindTransferIn,
		entity.MovementKindAdjustPos,
		entity.MovementKindProductionOutput,
		entity.MovementKindReturnIn,
	}
	for _, k := range inflows {
		dir, fixed := k.Direction()
		assert.True(t, fixed, "%s debe tener dirección fija", k)
		assert.Equal(t, entity.DirectionInflow, dir, "%s es entrada", k)
	}

	// La corrección de conteo decide dirección por instancia.
	_, fixed := entity.MovementKindCountCorrection.Direction()
	assert.False(t, fixed)
	assert.True(t, entity.MovementKindCountCorrection.Valid())

	assert.False(t, entity.MovementKind("SALE").Valid())
}

func TestDocumentType_Valid(t *testing.T) {
	for _, d := range []entity.DocumentType{
		entity.DocumentTypeGoodsReceipt,
		entity.DocumentTypeStockIssue,
		entity.DocumentTypeStockTransfer,
		entity.DocumentTypeStockAdjustment,
		entity.DocumentTypeCycleCount,
		entity.DocumentTypePurchaseOrder,
	} {
		assert.True(t, d.Valid(), "%s pertenece al conjunto cerrado", d)
	}
	assert.False(t, entity.DocumentType("INVOICE").Valid())
}
