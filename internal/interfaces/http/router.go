package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
	"github.com/jhoicas/gestor-inventario/internal/application/auth"
	"github.com/jhoicas/gestor-inventario/internal/application/inventory"
	"github.com/jhoicas/gestor-inventario/internal/application/usecase"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	MovementUC *inventory.MovementUseCase
	UserUC     *usecase.UserUseCase
	ReportUC   *analytics.ReportUseCase

	Responder *Responder
	Logger    *logger.Logger

	// RateLimitStore nil desactiva el rate limit de login/registro.
	RateLimitStore RateLimitStore
	RateLimit      AuthRateLimitPolicy
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	resp := deps.Responder
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, resp)
	loginPolicy, registerPolicy := deps.RateLimit, deps.RateLimit
	loginPolicy.Name, registerPolicy.Name = "login", "register"
	authGroup.Post("/login", AuthRateLimit(loginPolicy, deps.RateLimitStore, resp, deps.Logger), authHandler.Login)
	authGroup.Post("/register", AuthRateLimit(registerPolicy, deps.RateLimitStore, resp, deps.Logger), authHandler.Register)
	authGroup.Get("/validate", authHandler.Validate)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.AuthUC, resp))
	adminOnly := RequireRole(resp, entity.RoleAdmin)

	// Categories: lectura para todos, mutaciones solo admin
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, resp)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC, resp)
	products.Get("/export", productHandler.Export)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movements (ajustan stock)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.ReportUC, resp)
	movements.Get("/export", movementHandler.Export)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC, resp)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, resp)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/low-stock/export", reportHandler.ExportLowStock)
	reports.Get("/value-by-category", reportHandler.ValueByCategory)
	reports.Get("/value-by-category/export", reportHandler.ExportValueByCategory)
}

// RateLimitPolicy construye la política de auth desde la configuración.
func RateLimitPolicy(windowSeconds, perIP, perEmail int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		Window:     time.Duration(windowSeconds) * time.Second,
		IPLimit:    perIP,
		EmailLimit: perEmail,
	}
}
