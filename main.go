package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/mailer"
	"storefront/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "storefront",
		Usage:  "Storefront web application",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					_, zl, db, err := bootstrap()
					if err != nil {
						return err
					}
					defer zl.Sync()
					zl.Info("migration complete")
					return closeDB(db)
				},
			},
			{
				Name:  "seed",
				Usage: "Insert demo categories and products",
				Action: func(ctx context.Context, c *cli.Command) error {
					_, zl, db, err := bootstrap()
					if err != nil {
						return err
					}
					defer zl.Sync()
					if err := seed(ctx, db, zl); err != nil {
						return err
					}
					return closeDB(db)
				},
			},
			{
				Name:  "create-superuser",
				Usage: "Create an administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "login email", Required: true},
					&cli.StringFlag{Name: "password", Usage: "login password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, zl, db, err := bootstrap()
					if err != nil {
						return err
					}
					defer zl.Sync()
					auth := services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.JWTSecret, cfg.JWTTTL, nil, zl)
					user, err := auth.CreateSuperuser(ctx, c.String("email"), c.String("password"))
					if err != nil {
						return err
					}
					zl.Info("superuser created", zap.String("user_id", user.ID), zap.String("email", user.Email))
					return closeDB(db)
				},
			},
		},
	}
}

// bootstrap loads configuration, builds the logger and opens a migrated database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, zl)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, nil, err
	}
	return cfg, zl, db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDBLogged(db *gorm.DB, zl *zap.Logger) {
	if err := closeDB(db); err != nil {
		zl.Error("failed to close database", zap.Error(err))
	}
}

func serve(ctx context.Context, _ *cli.Command) error {
	cfg, zl, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer zl.Sync()
	defer closeDBLogged(db, zl)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier, cleanup := setupNotifications(ctx, cfg, db, zl)
	defer cleanup()

	app, _ := server.New(server.Deps{Config: cfg, DB: db, Notifier: notifier, Logger: zl})

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("addr", cfg.AppPort))
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	zl.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
	zl.Info("server gracefully stopped")
	return nil
}

// setupNotifications publishes events through RabbitMQ with a consumer that emails them.
// Without a reachable broker the dispatcher is used directly; without a sender address
// notifications are disabled.
func setupNotifications(ctx context.Context, cfg *config.Config, db *gorm.DB, zl *zap.Logger) (notify.Notifier, func()) {
	noop := func() {}
	if cfg.SMTP.From == "" {
		zl.Warn("SMTP_FROM and SMTP_USERNAME are empty, email notifications disabled")
		return nil, noop
	}

	smtpMailer := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	dispatcher := notify.NewDispatcher(smtpMailer, repositories.NewGORMUserRepository(db), zl)

	if cfg.RabbitMQURL == "" {
		return dispatcher, noop
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.NotificationQueue}, zl)
	if err != nil {
		zl.Warn("RabbitMQ unavailable, sending notifications in-process", zap.Error(err))
		return dispatcher, noop
	}
	if err := client.Consume(ctx, dispatcher.Handle); err != nil {
		zl.Warn("failed to start notification consumer, sending notifications in-process", zap.Error(err))
		client.Close()
		return dispatcher, noop
	}
	return notify.NewAMQPNotifier(client), func() {
		if err := client.Close(); err != nil {
			zl.Error("failed to close RabbitMQ client", zap.Error(err))
		}
	}
}

// seed populates an empty catalog with demo data. Existing records are left alone.
func seed(ctx context.Context, db *gorm.DB, zl *zap.Logger) error {
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	catalog := map[string][]models.Product{
		"Electronics": {
			{Name: "Laptop", Description: "High performance laptop", Price: decimal.RequireFromString("1200.00"), Quantity: 10},
			{Name: "Keyboard", Description: "Mechanical keyboard", Price: decimal.RequireFromString("75.00"), Discount: 10, Quantity: 25},
			{Name: "Mouse", Description: "Ergonomic wireless mouse", Price: decimal.RequireFromString("25.00"), Quantity: 50},
		},
		"Phones": {
			{Name: "Smartphone", Description: "6.5 inch display", Price: decimal.RequireFromString("499.90"), Discount: 5, Quantity: 15},
		},
	}

	for title, products := range catalog {
		category := &models.Category{Title: title}
		if err := categoryRepo.Create(ctx, category); err != nil {
			if !errors.Is(err, repositories.ErrDuplicate) {
				return err
			}
			zl.Info("category already exists", zap.String("title", title))
			continue
		}
		for i := range products {
			products[i].CategoryID = &category.ID
			if err := productRepo.Create(ctx, &products[i]); err != nil {
				if !errors.Is(err, repositories.ErrDuplicate) {
					return err
				}
				zl.Info("product already exists", zap.String("name", products[i].Name))
				continue
			}
			zl.Info("seeded product", zap.String("name", products[i].Name), zap.String("slug", products[i].Slug))
		}
	}
	return nil
}
