package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-inventario/internal/application/auth"
	"github.com/jhoicas/gestor-inventario/internal/application/dto"
)

// AuthHandler maneja login, registro y validación de token.
type AuthHandler struct {
	uc   *auth.AuthUseCase
	resp *Responder
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase, resp *Responder) *AuthHandler {
	return &AuthHandler{uc: uc, resp: resp}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea un usuario con rol "usuario". La contraseña debe tener al menos 6 caracteres.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.APIResponse{data=dto.UserResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      429   {object}  dto.APIResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := h.resp.Bind(c, &in); err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusCreated, out, "Usuario registrado exitosamente")
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.APIResponse{data=dto.LoginResponse}
// @Failure      401   {object}  dto.APIResponse
// @Failure      429   {object}  dto.APIResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := h.resp.Bind(c, &in); err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Inicio de sesión exitoso")
}

// Validate godoc
// @Summary      Validar token
// @Description  Devuelve el usuario actual si el token es válido y el usuario sigue activo.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.LoginResponse}
// @Failure      401  {object}  dto.APIResponse
// @Router       /api/auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	token, err := BearerToken(c)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Validate(c.UserContext(), token)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Token válido")
}
