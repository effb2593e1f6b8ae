package entity

import "time"

// UnitMeasure representa una unidad de medida.
// IsDecimal permite cantidades fraccionarias (kg, litros); si es false solo enteros.
type UnitMeasure struct {
	ID        string
	Code      string // UND, KG, LT, CAJA...
	Name      string
	IsDecimal bool
	CreatedAt time.Time
}
