package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain"
)

// Estados de una orden de compra.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusConfirmed         PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusClosed            PurchaseOrderStatus = "CLOSED"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// Estados de una línea de orden de compra, derivados de ReceivedQty vs OrderedQty.
type POLineStatus string

const (
	POLineStatusOpen              POLineStatus = "OPEN"
	POLineStatusPartiallyReceived POLineStatus = "PARTIALLY_RECEIVED"
	POLineStatusFullyReceived     POLineStatus = "FULLY_RECEIVED"
)

// PurchaseOrder representa una orden de compra. No postea al ledger por sí
// misma: su recepción es una recomputación de estado disparada por el posteo
// de recepciones de mercancía, dentro de la misma transacción.
type PurchaseOrder struct {
	ID          string
	Number      string
	SupplierID  string
	Status      PurchaseOrderStatus
	Notes       string
	ConfirmedAt *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Lines       []PurchaseOrderLine
}

// PurchaseOrderLine es una línea de orden. ReceivedQty es acumulada y jamás
// puede superar OrderedQty.
type PurchaseOrderLine struct {
	ID          string
	OrderID     string
	LineNo      int
	ProductID   string
	UomID       string
	OrderedQty  decimal.Decimal
	ReceivedQty decimal.Decimal
	UnitPrice   decimal.Decimal
	LineStatus  POLineStatus
	Status      LineStatus
}

// Editable reporta si el encabezado y sus líneas admiten cambios.
func (p *PurchaseOrder) Editable() bool {
	return p.Status == PurchaseOrderStatusDraft
}

// ActiveLines devuelve las líneas vivas en orden.
func (p *PurchaseOrder) ActiveLines() []PurchaseOrderLine {
	var out []PurchaseOrderLine
	for _, l := range p.Lines {
		if l.Status == LineStatusActive {
			out = append(out, l)
		}
	}
	return out
}

// Receivable reporta si la orden admite recepciones.
func (p *PurchaseOrder) Receivable() bool {
	return p.Status == PurchaseOrderStatusConfirmed || p.Status == PurchaseOrderStatusPartiallyReceived
}

// Confirm transiciona DRAFT -> CONFIRMED. Exige al menos una línea activa.
func (p *PurchaseOrder) Confirm(at time.Time) error {
	if p.Status != PurchaseOrderStatusDraft {
		return domain.ErrInvalidState
	}
	if len(p.ActiveLines()) == 0 {
		return domain.ErrNoActiveLines
	}
	p.Status = PurchaseOrderStatusConfirmed
	p.ConfirmedAt = &at
	return nil
}

// Cancel transiciona DRAFT/CONFIRMED -> CANCELLED (terminal). Una orden con
// recepciones parciales ya movió inventario y no se cancela.
func (p *PurchaseOrder) Cancel() error {
	if p.Status != PurchaseOrderStatusDraft && p.Status != PurchaseOrderStatusConfirmed {
		return domain.ErrInvalidState
	}
	p.Status = PurchaseOrderStatusCancelled
	return nil
}

// Close transiciona RECEIVED -> CLOSED (terminal).
func (p *PurchaseOrder) Close() error {
	if p.Status != PurchaseOrderStatusReceived {
		return domain.ErrInvalidState
	}
	p.Status = PurchaseOrderStatusClosed
	return nil
}

// ApplyReceipt acumula qty recibida sobre la línea indicada y recalcula los
// estados derivados de línea y encabezado. Falla con ErrOverReceipt si el
// acumulado superaría lo ordenado; falla con ErrInvalidState si la orden no
// está en condición de recibir.
func (p *PurchaseOrder) ApplyReceipt(lineID string, qty decimal.Decimal) error {
	if !p.Receivable() {
		return domain.ErrInvalidState
	}
	idx := -1
	for i := range p.Lines {
		if p.Lines[i].ID == lineID && p.Lines[i].Status == LineStatusActive {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	line := &p.Lines[idx]
	newQty := line.ReceivedQty.Add(qty)
	if newQty.GreaterThan(line.OrderedQty) {
		return domain.ErrOverReceipt
	}
	line.ReceivedQty = newQty
	p.recomputeStatus()
	return nil
}

// recomputeStatus deriva el estado de cada línea y del encabezado a partir de
// las cantidades acumuladas.
func (p *PurchaseOrder) recomputeStatus() {
	allFull, anyReceived := true, false
	for i := range p.Lines {
		l := &p.Lines[i]
		if l.Status != LineStatusActive {
			continue
		}
		switch {
		case l.ReceivedQty.GreaterThanOrEqual(l.OrderedQty) && l.OrderedQty.GreaterThan(decimal.Zero):
			l.LineStatus = POLineStatusFullyReceived
			anyReceived = true
		case l.ReceivedQty.GreaterThan(decimal.Zero):
			l.LineStatus = POLineStatusPartiallyReceived
			anyReceived = true
			allFull = false
		default:
			l.LineStatus = POLineStatusOpen
			allFull = false
		}
	}
	switch {
	case allFull && anyReceived:
		p.Status = PurchaseOrderStatusReceived
	case anyReceived:
		p.Status = PurchaseOrderStatusPartiallyReceived
	}
}
