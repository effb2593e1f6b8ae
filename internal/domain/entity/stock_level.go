package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa la existencia actual de un producto en una ubicación
// (y lote, si aplica). Clave: (ProductID, LocationID, BatchID opcional).
// Invariantes: OnHand >= 0 y 0 <= Reserved <= OnHand, siempre.
// Solo el ledger de movimientos puede mutar estas cantidades; la fila se crea
// con el primer movimiento que toca la clave y nunca se borra (queda en cero).
type StockLevel struct {
	ProductID  string
	LocationID string
	BatchID    *string // nil para productos sin manejo de lotes
	OnHand     decimal.Decimal
	Reserved   decimal.Decimal
	UpdatedAt  time.Time
}

// Available devuelve la cantidad disponible (OnHand - Reserved).
func (s *StockLevel) Available() decimal.Decimal {
	return s.OnHand.Sub(s.Reserved)
}
