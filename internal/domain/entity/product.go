package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Stock es un total en caché: solo lo modifica el motor de movimientos.
type Product struct {
	ID           string
	Name         string
	Description  string
	CategoryID   string
	Price        decimal.Decimal
	Stock        int
	MinStock     int
	Barcode      string // opcional, único si está presente
	Supplier     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CategoryName string // solo lectura (JOIN con categories)
}

// IsLowStock indica si el stock actual está por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.Stock < p.MinStock
}
