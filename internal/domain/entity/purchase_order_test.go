package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-stock/internal/domain"
	"github.com/jhoicas/erp-stock/internal/domain/entity"
)

func newTestOrder() *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:     "po1",
		Status: entity.PurchaseOrderStatusDraft,
		Lines: []entity.PurchaseOrderLine{
			{ID: "l1", ProductID: "p1", OrderedQty: decimal.NewFromInt(10), ReceivedQty: decimal.Zero, LineStatus: entity.POLineStatusOpen, Status: entity.LineStatusActive},
			{ID: "l2", ProductID: "p2", OrderedQty: decimal.NewFromInt(4), ReceivedQty: decimal.Zero, LineStatus: entity.POLineStatusOpen, Status: entity.LineStatusActive},
		},
	}
}

func TestPurchaseOrder_Confirm(t *testing.T) {
	order := newTestOrder()
	require.NoError(t, order.Confirm(time.Now()))
	assert.Equal(t, entity.PurchaseOrderStatusConfirmed, order.Status)
	assert.NotNil(t, order.ConfirmedAt)

	// Segunda confirmación rechazada.
	assert.ErrorIs(t, order.Confirm(time.Now()), domain.ErrInvalidState)
}

func TestPurchaseOrder_ConfirmSinLineas(t *testing.T) {
	order := &entity.PurchaseOrder{ID: "po1", Status: entity.PurchaseOrderStatusDraft}
	assert.ErrorIs(t, order.Confirm(time.Now()), domain.ErrNoActiveLines)

	// Líneas borradas no cuentan como activas.
	order = newTestOrder()
	for i := range order.Lines {
		order.Lines[i].Status = entity.LineStatusDeleted
	}
	assert.ErrorIs(t, order.Confirm(time.Now()), domain.ErrNoActiveLines)
}

func TestPurchaseOrder_ApplyReceipt_Parcial(t *testing.T) {
	order := newTestOrder()
	require.NoError(t, order.Confirm(time.Now()))

	require.NoError(t, order.ApplyReceipt("l1", decimal.NewFromInt(6)))
	assert.Equal(t, entity.PurchaseOrderStatusPartiallyReceived, order.Status)
	assert.Equal(t, entity.POLineStatusPartiallyReceived, order.Lines[0].LineStatus)
	assert.Equal(t, entity.POLineStatusOpen, order.Lines[1].LineStatus)
}

func TestPurchaseOrder_ApplyReceipt_Completa(t *testing.T) {
	order := newTestOrder()
	require.NoError(t, order.Confirm(time.Now()))

	require.NoError(t, order.ApplyReceipt("l1", decimal.NewFromInt(10)))
	require.NoError(t, order.ApplyReceipt("l2", decimal.NewFromInt(4)))
	assert.Equal(t, entity.PurchaseOrderStatusReceived, order.Status)
	assert.Equal(t, entity.POLineStatusFullyReceived, order.Lines[0].LineStatus)
	assert.Equal(t, entity.POLineStatusFullyReceived, order.Lines[1].LineStatus)

	// Con todo recibido la orden puede cerrarse.
	require.NoError(t, order.Close())
	assert.Equal(t, entity.PurchaseOrderStatusClosed, order.Status)
}

func TestPurchaseOrder_ApplyReceipt_SobreRecepcion(t *testing.T) {
	order := newTestOrder()
	require.NoError(t, order.Confirm(time.Now()))
	require.NoError(t, order.ApplyReceipt("l1", decimal.NewFromInt(8)))

	// 8 + 3 > 10: el acumulado jamás supera lo ordenado.
	err := order.ApplyReceipt("l1", decimal.NewFromInt(3))
	assert.ErrorIs(t, err, domain.ErrOverReceipt)
	assert.True(t, order.Lines[0].ReceivedQty.Equal(decimal.NewFromInt(8)))
}

func TestPurchaseOrder_ApplyReceipt_SinConfirmar(t *testing.T) {
	order := newTestOrder()
	assert.ErrorIs(t, order.ApplyReceipt("l1", decimal.NewFromInt(1)), domain.ErrInvalidState)
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	order := newTestOrder()
	require.NoError(t, order.Cancel())
	assert.Equal(t, entity.PurchaseOrderStatusCancelled, order.Status)

	// Confirmada sin recepciones también se cancela.
	order = newTestOrder()
	require.NoError(t, order.Confirm(time.Now()))
	require.NoError(t, order.Cancel())

	// Con recepción parcial ya movió inventario: no se cancela.
	order = newTestOrder()
	require.NoError(t, order.Confirm(time.Now()))
	require.NoError(t, order.ApplyReceipt("l1", decimal.NewFromInt(2)))
	assert.ErrorIs(t, order.Cancel(), domain.ErrInvalidState)
}

func TestPurchaseOrder_Close_SoloRecibida(t *testing.T) {
	order := newTestOrder()
	assert.ErrorIs(t, order.Close(), domain.ErrInvalidState)

	require.NoError(t, order.Confirm(time.Now()))
	assert.ErrorIs(t, order.Close(), domain.ErrInvalidState)
}
