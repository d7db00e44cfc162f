package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string // siempre en minúsculas
	PasswordHash string // bcrypt hash, nunca se expone
	Role         string // admin, usuario
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
