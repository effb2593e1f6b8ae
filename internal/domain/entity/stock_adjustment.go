package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ajuste de inventario.
type StockAdjustmentStatus string

const (
	StockAdjustmentStatusDraft  StockAdjustmentStatus = "DRAFT"
	StockAdjustmentStatusPosted StockAdjustmentStatus = "POSTED"
)

// StockAdjustment representa un ajuste manual de inventario. Cada línea lleva
// un delta con signo; al postear se traduce a ADJUST_POS o ADJUST_NEG por la
// magnitud absoluta (la dirección la fija el tipo de movimiento, no el signo
// persistido en el ledger).
type StockAdjustment struct {
	ID            string
	Number        string
	WarehouseID   string
	Status        StockAdjustmentStatus
	Reason        string
	LastPostError *string
	PostedBy      *string
	PostedAt      *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []StockAdjustmentLine
}

// StockAdjustmentLine es una línea de ajuste. SystemQty captura la existencia
// del sistema al crear la línea, para auditoría del ajuste.
type StockAdjustmentLine struct {
	ID           string
	AdjustmentID string
	LineNo       int
	ProductID    string
	LocationID   string
	BatchID      *string
	QtyDelta     decimal.Decimal // con signo; nunca cero
	SystemQty    decimal.Decimal // existencia al momento de crear la línea
	Status       LineStatus
}

// Editable reporta si el documento admite cambios.
func (a *StockAdjustment) Editable() bool {
	return a.Status == StockAdjustmentStatusDraft
}

// ActiveLines devuelve las líneas vivas en orden.
func (a *StockAdjustment) ActiveLines() []StockAdjustmentLine {
	var out []StockAdjustmentLine
	for _, l := range a.Lines {
		if l.Status == LineStatusActive {
			out = append(out, l)
		}
	}
	return out
}

// MarkPosted sella el documento.
func (a *StockAdjustment) MarkPosted(actor string, at time.Time) {
	a.Status = StockAdjustmentStatusPosted
	a.PostedBy = &actor
	a.PostedAt = &at
	a.LastPostError = nil
}
