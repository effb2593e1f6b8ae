package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain"
)

// Estados de un traslado entre bodegas.
type StockTransferStatus string

const (
	StockTransferStatusDraft     StockTransferStatus = "DRAFT"
	StockTransferStatusPosted    StockTransferStatus = "POSTED"
	StockTransferStatusCancelled StockTransferStatus = "CANCELLED"
)

// StockTransfer representa un traslado de inventario. Cada línea genera dos
// movimientos (TRANSFER_OUT y TRANSFER_IN) con la misma referencia, de modo que
// la suma de existencias entre las dos ubicaciones se conserva exactamente.
type StockTransfer struct {
	ID              string
	Number          string
	FromWarehouseID string
	ToWarehouseID   string
	Status          StockTransferStatus
	Notes           string
	LastPostError   *string
	PostedBy        *string
	PostedAt        *time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []StockTransferLine
}

// StockTransferLine es una línea de traslado. Origen y destino nunca pueden
// ser la misma ubicación (se valida al guardar, no solo al postear).
type StockTransferLine struct {
	ID             string
	TransferID     string
	LineNo         int
	ProductID      string
	UomID          string
	FromLocationID string
	ToLocationID   string
	BatchID        *string
	Quantity       decimal.Decimal
	Status         LineStatus
}

// Editable reporta si el documento admite cambios.
func (t *StockTransfer) Editable() bool {
	return t.Status == StockTransferStatusDraft
}

// ActiveLines devuelve las líneas vivas en orden.
func (t *StockTransfer) ActiveLines() []StockTransferLine {
	var out []StockTransferLine
	for _, l := range t.Lines {
		if l.Status == LineStatusActive {
			out = append(out, l)
		}
	}
	return out
}

// MarkPosted sella el documento.
func (t *StockTransfer) MarkPosted(actor string, at time.Time) {
	t.Status = StockTransferStatusPosted
	t.PostedBy = &actor
	t.PostedAt = &at
	t.LastPostError = nil
}

// Cancel transiciona DRAFT -> CANCELLED. Un traslado posteado no se cancela:
// se compensa con un traslado inverso.
func (t *StockTransfer) Cancel() error {
	if t.Status != StockTransferStatusDraft {
		return domain.ErrInvalidState
	}
	t.Status = StockTransferStatusCancelled
	return nil
}
