package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          string
	Name        string // único
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
