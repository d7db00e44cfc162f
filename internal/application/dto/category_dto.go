package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"nombre" validate:"required,max=50"`
	Description string `json:"descripcion" validate:"omitempty,max=200"`
	Active      *bool  `json:"activo"`
}

// UpdateCategoryRequest actualización parcial de una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=50"`
	Description *string `json:"descripcion" validate:"omitempty,max=200"`
	Active      *bool   `json:"activo"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Active      bool      `json:"activo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
