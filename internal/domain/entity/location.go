package entity

import "time"

// Location representa una ubicación dentro de una bodega (estantería, muelle, zona).
// IsPickable habilita salidas; IsReceivable habilita recepciones.
type Location struct {
	ID           string
	WarehouseID  string
	Code         string
	Name         string
	IsPickable   bool
	IsReceivable bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
