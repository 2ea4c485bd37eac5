package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/share-registry/share_registry/internal/config"
	"github.com/share-registry/share_registry/internal/middleware"
	"github.com/share-registry/share_registry/internal/ownership"
	"github.com/share-registry/share_registry/internal/registry"
	"github.com/share-registry/share_registry/internal/shares"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	Registry *registry.Registry
	Cache    *redis.Client
	Logger   *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Registry == nil {
		return fmt.Errorf("registry is required")
	}
	// Enforce Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() && d.Cache == nil {
		return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Caller())
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	ownershipSvc := ownership.NewService(d.Registry)
	sharesSvc := shares.NewService(d.Registry)
	ownershipHandler := ownership.NewHandler(ownershipSvc)
	sharesHandler := shares.NewHandler(sharesSvc)

	// API routes
	api := app.Group("/api/v1", middleware.Audit(d.Logger))
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterOwnershipRoutes(api, ownershipHandler)

	transferLimiter := middleware.TransferRateLimit(d.Cache, d.Cfg.TransferPerMin)
	RegisterShareRoutes(api, sharesHandler, transferLimiter)

	return nil
}
