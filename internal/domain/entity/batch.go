package entity

import "time"

// Batch representa un lote de un producto con trazabilidad (IsBatchTracked).
// Un lote pertenece exactamente a un producto.
type Batch struct {
	ID        string
	ProductID string
	Code      string
	ExpiresAt *time.Time
	CreatedAt time.Time
}
