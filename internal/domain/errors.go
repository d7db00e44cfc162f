package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrMovementNotFound   = errors.New("movimiento no encontrado")
	ErrCategoryNotFound   = errors.New("categoría no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("ya existe un usuario con ese email")
	ErrCategoryNameTaken  = errors.New("ya existe una categoría con ese nombre")
	ErrBarcodeTaken       = errors.New("ya existe un producto con ese código de barras")
	ErrInvalidCategory    = errors.New("la categoría indicada no existe")
	ErrInvalidInput       = errors.New("datos de entrada inválidos")
	ErrPasswordTooShort   = errors.New("la contraseña debe tener al menos 6 caracteres")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInactiveUser       = errors.New("usuario desactivado")
	ErrTokenExpired       = errors.New("token expirado")
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrProtectedUser      = errors.New("no se puede modificar el usuario administrador principal del sistema")
	ErrSelfDelete         = errors.New("no puedes eliminar tu propia cuenta")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrCategoryInUse      = errors.New("la categoría tiene productos asociados")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrRateLimited        = errors.New("demasiados intentos")
)
