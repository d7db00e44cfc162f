package repository

import (
	"context"

	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
)

// MovementFilter criterios de listado de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia para movimientos de inventario.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, int, error)
}
