package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/gestor-inventario/docs"
	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
	"github.com/jhoicas/gestor-inventario/internal/application/auth"
	"github.com/jhoicas/gestor-inventario/internal/application/inventory"
	"github.com/jhoicas/gestor-inventario/internal/application/usecase"
	"github.com/jhoicas/gestor-inventario/internal/infrastructure/csvexport"
	infrapdf "github.com/jhoicas/gestor-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/gestor-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestor-inventario/internal/interfaces/http"
	"github.com/jhoicas/gestor-inventario/pkg/config"
	"github.com/jhoicas/gestor-inventario/pkg/logger"
	"github.com/jhoicas/gestor-inventario/pkg/metrics"
	pkgredis "github.com/jhoicas/gestor-inventario/pkg/redis"
	"github.com/jhoicas/gestor-inventario/pkg/validator"
)

// @title                       Gestor de Inventario API
// @version                     1.0
// @description                 Productos, categorías, movimientos de stock, usuarios y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// Redis solo respalda el rate limit de auth; sin Redis queda desactivado.
	var rateLimitStore httpRouter.RateLimitStore
	if cfg.Redis.Enabled() {
		rdb, err := pkgredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, rate limit desactivado")
		} else {
			defer rdb.Close()
			rateLimitStore = rdb
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	inventoryMetrics := metrics.NewInventoryMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	userUC := usecase.NewUserUseCase(userRepo, cfg.App.RootAdminEmail)
	movementUC := inventory.NewMovementUseCase(txRunner, movementRepo, inventoryMetrics)

	// Exportaciones: CSV (UTF-8 o Latin-1) y PDF de stock bajo
	reportUC := analytics.NewReportUseCase(
		reportRepo, productRepo, movementRepo,
		csvexport.NewEncoder(), infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
	)

	responder := httpRouter.NewResponder(log.Component("http"), validator.New(), !cfg.App.IsProduction())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(responder),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("access"), httpMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestor de Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if err := pool.Ping(c.UserContext()); err != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{"status": status, "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CategoryUC:     categoryUC,
		ProductUC:      productUC,
		MovementUC:     movementUC,
		UserUC:         userUC,
		ReportUC:       reportUC,
		Responder:      responder,
		Logger:         log.Component("ratelimit"),
		RateLimitStore: rateLimitStore,
		RateLimit:      httpRouter.RateLimitPolicy(cfg.RateLimit.WindowSeconds, cfg.RateLimit.PerIP, cfg.RateLimit.PerEmail),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
