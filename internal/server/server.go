// Package server assembles the storefront HTTP application.
package server

import (
	"time"

	"storefront/internal/backup"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the resources the application is built from. Notifier may be nil; Now defaults to time.Now.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Notifier notify.Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

// New wires repositories, services and handlers into a Fiber app.
func New(d Deps) (*fiber.App, *services.AuthService) {
	cfg, log := d.Config, d.Logger

	productRepo := repositories.NewGORMProductRepository(d.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(d.DB)
	orderRepo := repositories.NewGORMOrderRepository(d.DB)
	likeRepo := repositories.NewGORMLikeRepository(d.DB)
	customerRepo := repositories.NewGORMCustomerRepository(d.DB)
	userRepo := repositories.NewGORMUserRepository(d.DB)

	productService := services.NewProductService(productRepo, backup.NewFileStore(cfg.BackupPath), d.Notifier, log)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, productService, d.Notifier, log)
	orderService := services.NewOrderService(orderRepo, productRepo, d.Notifier, log)
	customerService := services.NewCustomerService(customerRepo, d.Notifier, log)
	likeService := services.NewLikeService(likeRepo, productRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, d.Notifier, log)

	storefrontHandler := handlers.NewStorefrontHandler(productService, categoryService, orderService, log)
	productHandler := handlers.NewProductHandler(productService, likeService, log)
	categoryHandler := handlers.NewCategoryHandler(categoryService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	customerHandler := handlers.NewCustomerHandler(customerService, log)
	authHandler := handlers.NewAuthHandler(authService, log)

	app := fiber.New(fiber.Config{
		AppName:     "storefront",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "connected"
		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status = "unavailable"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": status,
		})
	})

	app.Use(middleware.MaintenanceWindow(cfg.MaintenanceStart, cfg.MaintenanceEnd, d.Now))

	storefrontHandler.RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	auth := middleware.AuthRequired(authService, log)

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1, auth)
	categoryHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)

	admin := apiV1.Group("/admin", auth, middleware.AdminOnly())
	productHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	customerHandler.RegisterAdminRoutes(admin)

	return app, authService
}
