package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/pkg/logger"
)

// RateLimitStore contador con ventana fija. Lo implementa *redis.Client.
type RateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(parts ...string) string
}

// AuthRateLimitPolicy límites de intentos por IP y por email para un endpoint de auth.
type AuthRateLimitPolicy struct {
	Name       string
	Window     time.Duration
	IPLimit    int
	EmailLimit int
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.EmailLimit > 0)
}

// AuthRateLimit limita intentos de login/registro. Sin store (Redis no configurado) no hace nada.
// Si Redis falla se deja pasar la petición y se registra el error.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateLimitStore, r *Responder, log *logger.Logger) fiber.Handler {
	if !policy.enabled() || store == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if log == nil {
		log = logger.Nop()
	}
	name := strings.ToLower(strings.TrimSpace(policy.Name))
	if name == "" {
		name = "auth"
	}

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if policy.IPLimit > 0 {
			if ip := c.IP(); ip != "" {
				key := store.RateLimitKey("ip", name, ip)
				if blocked := over(ctx, store, key, policy.Window, policy.IPLimit, log); blocked {
					log.Warn().Str("scope", "ip").Str("policy", name).Str("ip", ip).Msg("auth.rate_limit.blocked")
					return r.Fail(c, domain.ErrRateLimited)
				}
			}
		}

		if policy.EmailLimit > 0 {
			if email := extractEmail(c.Body()); email != "" {
				hash := hashValue(email)
				key := store.RateLimitKey("email", name, hash)
				if blocked := over(ctx, store, key, policy.Window, policy.EmailLimit, log); blocked {
					log.Warn().Str("scope", "email").Str("policy", name).Str("email_hash", hash).Msg("auth.rate_limit.blocked")
					return r.Fail(c, domain.ErrRateLimited)
				}
			}
		}

		return c.Next()
	}
}

func over(ctx context.Context, store RateLimitStore, key string, window time.Duration, limit int, log *logger.Logger) bool {
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("rate limit: redis no disponible")
		return false
	}
	return count > int64(limit)
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Email))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
