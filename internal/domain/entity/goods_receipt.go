package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recepción de mercancía.
type GoodsReceiptStatus string

const (
	GoodsReceiptStatusDraft  GoodsReceiptStatus = "DRAFT"
	GoodsReceiptStatusPosted GoodsReceiptStatus = "POSTED"
)

// GoodsReceipt representa una recepción de mercancía (entrada a bodega).
// Puede estar ligada a una orden de compra; al postear incrementa la cantidad
// recibida de las líneas de la orden dentro de la misma transacción.
type GoodsReceipt struct {
	ID              string
	Number          string
	WarehouseID     string
	PurchaseOrderID *string
	Status          GoodsReceiptStatus
	Notes           string
	LastPostError   *string
	PostedBy        *string
	PostedAt        *time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []GoodsReceiptLine
}

// GoodsReceiptLine es una línea de recepción.
type GoodsReceiptLine struct {
	ID          string
	ReceiptID   string
	LineNo      int
	ProductID   string
	LocationID  string
	BatchID     *string
	UomID       string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	POLineID    *string // línea de la orden de compra que abastece, si aplica
	Status      LineStatus
}

// Editable reporta si el encabezado y sus líneas admiten cambios.
func (r *GoodsReceipt) Editable() bool {
	return r.Status == GoodsReceiptStatusDraft
}

// ActiveLines devuelve las líneas vivas en orden, excluyendo borradas.
func (r *GoodsReceipt) ActiveLines() []GoodsReceiptLine {
	var out []GoodsReceiptLine
	for _, l := range r.Lines {
		if l.Status == LineStatusActive {
			out = append(out, l)
		}
	}
	return out
}

// MarkPosted sella el documento: estado terminal y estampa de auditoría.
func (r *GoodsReceipt) MarkPosted(actor string, at time.Time) {
	r.Status = GoodsReceiptStatusPosted
	r.PostedBy = &actor
	r.PostedAt = &at
	r.LastPostError = nil
}
