package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una salida de inventario.
type StockIssueStatus string

const (
	StockIssueStatusDraft  StockIssueStatus = "DRAFT"
	StockIssueStatusPosted StockIssueStatus = "POSTED"
)

// StockIssue representa una salida de inventario (consumo, venta, merma).
type StockIssue struct {
	ID            string
	Number        string
	WarehouseID   string
	Status        StockIssueStatus
	Reason        string
	LastPostError *string
	PostedBy      *string
	PostedAt      *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []StockIssueLine
}

// StockIssueLine es una línea de salida. La unidad de medida se toma del
// producto (DefaultUomID) al traducir a movimiento.
type StockIssueLine struct {
	ID             string
	IssueID        string
	LineNo         int
	ProductID      string
	FromLocationID string
	BatchID        *string
	Quantity       decimal.Decimal
	Status         LineStatus
}

// Editable reporta si el documento admite cambios.
func (i *StockIssue) Editable() bool {
	return i.Status == StockIssueStatusDraft
}

// ActiveLines devuelve las líneas vivas en orden.
func (i *StockIssue) ActiveLines() []StockIssueLine {
	var out []StockIssueLine
	for _, l := range i.Lines {
		if l.Status == LineStatusActive {
			out = append(out, l)
		}
	}
	return out
}

// MarkPosted sella el documento.
func (i *StockIssue) MarkPosted(actor string, at time.Time) {
	i.Status = StockIssueStatusPosted
	i.PostedBy = &actor
	i.PostedAt = &at
	i.LastPostError = nil
}
