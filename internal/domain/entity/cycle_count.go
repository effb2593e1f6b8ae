package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-stock/internal/domain"
)

// Estados de un conteo cíclico.
type CycleCountStatus string

const (
	CycleCountStatusScheduled  CycleCountStatus = "SCHEDULED"
	CycleCountStatusInProgress CycleCountStatus = "IN_PROGRESS"
	CycleCountStatusCompleted  CycleCountStatus = "COMPLETED"
	CycleCountStatusPosted     CycleCountStatus = "POSTED"
)

// CycleCount representa un conteo cíclico de inventario. Al iniciar se captura
// la existencia del sistema por línea; al completar se deriva la varianza; al
// postear, cada línea con varianza distinta de cero genera un movimiento
// COUNT_CORRECTION en la misma ubicación contada, dirección según el signo.
type CycleCount struct {
	ID            string
	Number        string
	WarehouseID   string
	Status        CycleCountStatus
	ScheduledFor  time.Time
	Notes         string
	LastPostError *string
	StartedAt     *time.Time
	CompletedAt   *time.Time
	PostedBy      *string
	PostedAt      *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []CycleCountLine
}

// CycleCountLine es una línea de conteo. SystemQty se congela al iniciar el
// conteo; CountedQty queda nil hasta que alguien registra el conteo físico.
type CycleCountLine struct {
	ID         string
	CountID    string
	LineNo     int
	ProductID  string
	LocationID string
	BatchID    *string
	UomID      string
	SystemQty  decimal.Decimal
	CountedQty *decimal.Decimal
	Status     LineStatus
}

// Variance devuelve CountedQty - SystemQty y true si la línea ya fue contada.
func (l *CycleCountLine) Variance() (decimal.Decimal, bool) {
	if l.CountedQty == nil {
		return decimal.Zero, false
	}
	return l.CountedQty.Sub(l.SystemQty), true
}

// Editable reporta si se pueden agregar o quitar líneas.
// Una vez iniciado, solo se registran cantidades contadas.
func (c *CycleCount) Editable() bool {
	return c.Status == CycleCountStatusScheduled
}

// ActiveLines devuelve las líneas vivas en orden.
func (c *CycleCount) ActiveLines() []CycleCountLine {
	var out []CycleCountLine
	for _, l := range c.Lines {
		if l.Status == LineStatusActive {
			out = append(out, l)
		}
	}
	return out
}

// Start transiciona SCHEDULED -> IN_PROGRESS. La captura de SystemQty por
// línea la hace el caso de uso leyendo StockLevel en ese instante.
func (c *CycleCount) Start(at time.Time) error {
	if c.Status != CycleCountStatusScheduled {
		return domain.ErrInvalidState
	}
	c.Status = CycleCountStatusInProgress
	c.StartedAt = &at
	return nil
}

// Complete transiciona IN_PROGRESS -> COMPLETED. Exige que toda línea activa
// tenga cantidad contada registrada.
func (c *CycleCount) Complete(at time.Time) error {
	if c.Status != CycleCountStatusInProgress {
		return domain.ErrInvalidState
	}
	for _, l := range c.ActiveLines() {
		if l.CountedQty == nil {
			return domain.ErrInvalidInput
		}
	}
	c.Status = CycleCountStatusCompleted
	c.CompletedAt = &at
	return nil
}

// MarkPosted sella el documento.
func (c *CycleCount) MarkPosted(actor string, at time.Time) {
	c.Status = CycleCountStatusPosted
	c.PostedBy = &actor
	c.PostedAt = &at
	c.LastPostError = nil
}
