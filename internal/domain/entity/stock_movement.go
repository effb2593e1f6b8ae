package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind clasifica un movimiento del ledger. Conjunto cerrado: la
// dirección (entrada/salida) la define el tipo, nunca el signo de la cantidad.
type MovementKind string

const (
	// Salidas: decrementan la ubicación origen.
	MovementKindIssue                 MovementKind = "ISSUE"
	MovementKindTransferOut           MovementKind = "TRANSFER_OUT"
	MovementKindAdjustNeg             MovementKind = "ADJUST_NEG"
	MovementKindProductionConsumption MovementKind = "PRODUCTION_CONSUMPTION"
	MovementKindReturnOut             MovementKind = "RETURN_OUT"

	// Entradas: incrementan la ubicación destino.
	MovementKindReceipt          MovementKind = "RECEIPT"
	MovementKindTransferIn       MovementKind = "TRANSFER_IN"
	MovementKindAdjustPos        MovementKind = "ADJUST_POS"
	MovementKindProductionOutput MovementKind = "PRODUCTION_OUTPUT"
	MovementKindReturnIn         MovementKind = "RETURN_IN"

	// Corrección de conteo: la dirección se decide por instancia según el signo
	// de la varianza; la ubicación es la misma en ambos sentidos (la contada).
	MovementKindCountCorrection MovementKind = "COUNT_CORRECTION"
)

// MovementDirection indica si el movimiento entra o sale de inventario.
type MovementDirection int

const (
	DirectionOutflow MovementDirection = iota
	DirectionInflow
)

// Direction devuelve la dirección fija del tipo y true si está definida por el
// tipo. Para COUNT_CORRECTION devuelve false: la dirección viaja por instancia.
func (k MovementKind) Direction() (MovementDirection, bool) {
	switch k {
	case MovementKindIssue, MovementKindTransferOut, MovementKindAdjustNeg,
		MovementKindProductionConsumption, MovementKindReturnOut:
		return DirectionOutflow, true
	case MovementKindReceipt, MovementKindTransferIn, MovementKindAdjustPos,
		MovementKindProductionOutput, MovementKindReturnIn:
		return DirectionInflow, true
	}
	return DirectionOutflow, false
}

// Valid reporta si el tipo pertenece a la taxonomía cerrada.
func (k MovementKind) Valid() bool {
	if _, ok := k.Direction(); ok {
		return true
	}
	return k == MovementKindCountCorrection
}

// DocumentType identifica el tipo de documento que originó un movimiento.
// Conjunto cerrado: la referencia del ledger solo puede apuntar a estos.
type DocumentType string

const (
	DocumentTypeGoodsReceipt    DocumentType = "GOODS_RECEIPT"
	DocumentTypeStockIssue      DocumentType = "STOCK_ISSUE"
	DocumentTypeStockTransfer   DocumentType = "STOCK_TRANSFER"
	DocumentTypeStockAdjustment DocumentType = "STOCK_ADJUSTMENT"
	DocumentTypeCycleCount      DocumentType = "CYCLE_COUNT"
	DocumentTypePurchaseOrder   DocumentType = "PURCHASE_ORDER"
)

// Valid reporta si el tipo de documento pertenece al conjunto cerrado.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeGoodsReceipt, DocumentTypeStockIssue, DocumentTypeStockTransfer,
		DocumentTypeStockAdjustment, DocumentTypeCycleCount, DocumentTypePurchaseOrder:
		return true
	}
	return false
}

// MovementReference liga un movimiento al documento que lo originó (auditoría).
type MovementReference struct {
	Type       DocumentType
	DocumentID string
}

// StockMovement es una entrada inmutable del ledger de inventario.
// Quantity siempre es positiva; la dirección la da el tipo (o la instancia en
// COUNT_CORRECTION). Una vez creada jamás se edita ni se borra: las
// correcciones se hacen posteando un movimiento compensatorio.
type StockMovement struct {
	ID             string
	Kind           MovementKind
	ProductID      string
	UomID          string
	Quantity       decimal.Decimal // magnitud > 0, sin signo
	FromLocationID *string         // obligatorio en salidas
	ToLocationID   *string         // obligatorio en entradas
	BatchID        *string
	Reference      MovementReference
	Note           string
	CreatedBy      string
	CreatedAt      time.Time
}
