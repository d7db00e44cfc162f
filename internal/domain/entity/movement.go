package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
)

// DefaultMovementReason motivo usado cuando el cliente no envía uno.
const DefaultMovementReason = "Movimiento de inventario"

// Movement representa una entrada o salida de stock de un producto.
// ProductID no tiene FK: el registro sobrevive a la eliminación del producto.
type Movement struct {
	ID        string
	ProductID string
	Type      string // entrada, salida
	Quantity  int    // siempre >= 1
	Reason    string
	User      string // texto libre: responsable del movimiento
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Datos del producto referenciado (LEFT JOIN); vacíos si fue eliminado.
	ProductName        string
	ProductDescription string
}

// IsValidMovementType indica si t es un tipo de movimiento soportado.
func IsValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}
