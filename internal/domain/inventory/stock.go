package inventory

import (
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
)

// Delta devuelve el efecto de un movimiento sobre el stock (servicio de dominio).
// entrada => +cantidad, salida => -cantidad.
func Delta(movementType string, quantity int) (int, error) {
	if quantity < 1 {
		return 0, domain.ErrInvalidInput
	}
	switch movementType {
	case entity.MovementTypeEntrada:
		return quantity, nil
	case entity.MovementTypeSalida:
		return -quantity, nil
	}
	return 0, domain.ErrInvalidInput
}

// Apply aplica un movimiento nuevo sobre stock. Una salida exige stock >= cantidad.
func Apply(stock int, movementType string, quantity int) (int, error) {
	d, err := Delta(movementType, quantity)
	if err != nil {
		return stock, err
	}
	return checked(stock, stock+d)
}

// Reverse revierte el efecto de un movimiento ya registrado.
// Revertir una entrada cuyas unidades ya salieron devolvería stock negativo: se rechaza.
func Reverse(stock int, movementType string, quantity int) (int, error) {
	d, err := Delta(movementType, quantity)
	if err != nil {
		return stock, err
	}
	return checked(stock, stock-d)
}

// Revise revierte el movimiento original y aplica el nuevo sobre la base ya revertida.
// Solo el valor final debe ser >= 0.
func Revise(stock int, oldType string, oldQty int, newType string, newQty int) (int, error) {
	oldDelta, err := Delta(oldType, oldQty)
	if err != nil {
		return stock, err
	}
	newDelta, err := Delta(newType, newQty)
	if err != nil {
		return stock, err
	}
	return checked(stock, stock-oldDelta+newDelta)
}

func checked(before, after int) (int, error) {
	if after < 0 {
		return before, domain.ErrInsufficientStock
	}
	return after, nil
}
