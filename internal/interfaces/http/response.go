package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/pkg/logger"
	"github.com/jhoicas/gestor-inventario/pkg/validator"
)

const msgInternal = "Error interno del servidor"

// errorMapping respuesta HTTP para un error de dominio.
type errorMapping struct {
	err     error
	status  int
	message string
}

// errorTable se recorre en orden: los errores específicos van antes que los genéricos.
var errorTable = []errorMapping{
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "Stock insuficiente para realizar la salida"},
	{domain.ErrPasswordTooShort, fiber.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres"},
	{domain.ErrCategoryNameTaken, fiber.StatusBadRequest, "Ya existe una categoría con ese nombre"},
	{domain.ErrBarcodeTaken, fiber.StatusBadRequest, "Ya existe un producto con ese código de barras"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "Ya existe un usuario con ese email"},
	{domain.ErrInvalidCategory, fiber.StatusBadRequest, "La categoría indicada no existe"},
	{domain.ErrDuplicate, fiber.StatusBadRequest, "El registro ya existe"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "Datos de entrada inválidos"},

	{domain.ErrProductNotFound, fiber.StatusNotFound, "Producto no encontrado"},
	{domain.ErrMovementNotFound, fiber.StatusNotFound, "Movimiento no encontrado"},
	{domain.ErrCategoryNotFound, fiber.StatusNotFound, "Categoría no encontrada"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "Usuario no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "Recurso no encontrado"},

	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "Credenciales inválidas"},
	{domain.ErrInactiveUser, fiber.StatusUnauthorized, "Usuario desactivado"},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized, "Token expirado"},
	{domain.ErrInvalidToken, fiber.StatusUnauthorized, "Token inválido o expirado"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "Token de acceso requerido"},

	{domain.ErrProtectedUser, fiber.StatusForbidden, "No se puede eliminar ni degradar el usuario administrador principal del sistema"},
	{domain.ErrSelfDelete, fiber.StatusForbidden, "No puedes eliminar tu propia cuenta"},
	{domain.ErrForbidden, fiber.StatusForbidden, "No tienes permisos para realizar esta acción"},

	{domain.ErrCategoryInUse, fiber.StatusConflict, "La categoría tiene productos asociados"},
	{domain.ErrConflict, fiber.StatusConflict, "Conflicto con el estado actual del recurso"},

	{domain.ErrRateLimited, fiber.StatusTooManyRequests, "Demasiados intentos, intente más tarde"},
}

// Responder escribe el envoltorio {success, data, message, pagination, error} y traduce
// errores de dominio a códigos HTTP.
type Responder struct {
	log          *logger.Logger
	validate     validator.Validator
	exposeErrors bool // incluir err.Error() en la respuesta (fuera de producción)
}

// NewResponder construye el responder. exposeErrors debe ser false en producción.
func NewResponder(log *logger.Logger, v validator.Validator, exposeErrors bool) *Responder {
	if log == nil {
		log = logger.Nop()
	}
	if v == nil {
		v = validator.New()
	}
	return &Responder{log: log, validate: v, exposeErrors: exposeErrors}
}

// OK responde success=true con datos y mensaje.
func (r *Responder) OK(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(dto.APIResponse{Success: true, Data: data, Message: message})
}

// Page responde un listado paginado.
func (r *Responder) Page(c *fiber.Ctx, data interface{}, p *dto.Pagination, message string) error {
	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{Success: true, Data: data, Message: message, Pagination: p})
}

// Fail responde success=false con el estado y mensaje del error.
// Los errores no clasificados se registran y se devuelven como 500.
func (r *Responder) Fail(c *fiber.Ctx, err error) error {
	status, message := classify(err)
	resp := dto.APIResponse{Success: false, Message: message}
	if validator.IsValidationError(err) {
		resp.Details = validator.Details(err)
	}
	if status == fiber.StatusInternalServerError {
		r.log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
	}
	if r.exposeErrors {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}

// Bind parsea el body JSON en dst y lo valida.
func (r *Responder) Bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return r.validate.Validate(dst)
}

// classify devuelve estado y mensaje para err.
func classify(err error) (int, string) {
	if validator.IsValidationError(err) {
		return fiber.StatusBadRequest, "Datos de entrada inválidos"
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return fiber.StatusInternalServerError, msgInternal
}

// ErrorHandler manejador global de fiber (rutas inexistentes, panics recuperados, body demasiado grande).
func ErrorHandler(r *Responder) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return r.Fail(c, err)
	}
}
