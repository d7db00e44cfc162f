package repository

import (
	"context"

	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search     string // subcadena en nombre o descripción (sin distinguir mayúsculas)
	CategoryID string
	LowStock   bool
	Active     *bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update no modifica Stock (se maneja vía movimientos).
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	Delete(ctx context.Context, id string) error
}
