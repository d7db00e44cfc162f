package inventory

import (
	"context"

	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// MovementMetrics registra el resultado de cada operación del motor.
type MovementMetrics interface {
	ObserveMovement(operation, movementType, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveMovement(string, string, string) {}
