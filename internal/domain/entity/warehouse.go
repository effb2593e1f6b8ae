package entity

import "time"

// Warehouse representa una bodega física; agrupa ubicaciones (Location).
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
