package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
)

// Locals keys del usuario autenticado en Fiber.
const (
	LocalUser     = "user"
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalUserName = "user_name"
)

// Authenticator resuelve el usuario actual a partir del token. Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token, recarga el usuario desde la BD y lo guarda en c.Locals.
// El rol sale de la BD: un usuario degradado o desactivado pierde acceso aunque su token siga vigente.
func AuthMiddleware(authn Authenticator, r *Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c)
		if err != nil {
			return r.Fail(c, err)
		}
		user, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			return r.Fail(c, err)
		}
		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalUserName, user.Name)
		return c.Next()
	}
}

// BearerToken extrae el token del header Authorization ("Bearer <token>").
func BearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return "", domain.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrInvalidToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	return token, nil
}

// RequireRole permite el paso solo a los roles indicados. Usar después de AuthMiddleware.
func RequireRole(r *Responder, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return r.Fail(c, domain.ErrUnauthorized)
		}
		if _, ok := allowed[role]; !ok {
			return r.Fail(c, domain.ErrForbidden)
		}
		return c.Next()
	}
}

// GetUserID devuelve el ID del usuario autenticado.
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol (de la BD) del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetUserName devuelve el nombre del usuario autenticado (responsable por defecto de los movimientos).
func GetUserName(c *fiber.Ctx) string {
	return localString(c, LocalUserName)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
