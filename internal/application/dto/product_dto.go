package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock solo se fija al crear.
type CreateProductRequest struct {
	Name        string          `json:"nombre" validate:"required,max=100"`
	Description string          `json:"descripcion" validate:"required,max=500"`
	CategoryID  string          `json:"categoria" validate:"required,uuid"`
	Price       decimal.Decimal `json:"precio" validate:"gte=0"`
	Stock       int             `json:"stock" validate:"min=0"`
	MinStock    int             `json:"stockMinimo" validate:"min=0"`
	Barcode     string          `json:"codigoBarras" validate:"omitempty,max=50"`
	Supplier    string          `json:"proveedor" validate:"omitempty,max=100"`
	Active      *bool           `json:"activo"`
}

// UpdateProductRequest actualización parcial (sin Stock: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"descripcion" validate:"omitempty,min=1,max=500"`
	CategoryID  *string          `json:"categoria" validate:"omitempty,uuid"`
	Price       *decimal.Decimal `json:"precio" validate:"omitempty,gte=0"`
	MinStock    *int             `json:"stockMinimo" validate:"omitempty,min=0"`
	Barcode     *string          `json:"codigoBarras" validate:"omitempty,max=50"`
	Supplier    *string          `json:"proveedor" validate:"omitempty,max=100"`
	Active      *bool            `json:"activo"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"categoria"`
	LowStock   bool   `query:"lowStock"`
	Active     *bool  `query:"activo"`
}

// CategoryRef categoría embebida en la respuesta de producto.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Category    CategoryRef     `json:"categoria"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"stockMinimo"`
	Barcode     string          `json:"codigoBarras,omitempty"`
	Supplier    string          `json:"proveedor,omitempty"`
	Active      bool            `json:"activo"`
	IsLowStock  bool            `json:"isLowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
