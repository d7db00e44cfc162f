package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name     string `json:"nombre" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"rol" validate:"omitempty,oneof=admin usuario"`
	Active   *bool  `json:"activo"`
}

// UpdateUserRequest actualización parcial; Password vacío conserva el hash actual.
type UpdateUserRequest struct {
	Name     *string `json:"nombre" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"rol" validate:"omitempty,oneof=admin usuario"`
	Active   *bool   `json:"activo"`
}

// RegisterRequest entrada para registro público. El rol siempre es "usuario".
type RegisterRequest struct {
	Name     string `json:"nombre" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Role      string    `json:"rol"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
