// Package server exposes the smoothing pipeline over HTTP, for map clients
// that hand their drawn features to the server instead of smoothing locally.
package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"honnef.co/go/smooth/internal/config"
	"honnef.co/go/smooth/internal/metrics"
)

// Dependencies are the collaborators of the HTTP handlers.
type Dependencies struct {
	Smoothing config.SmoothingConfig
	Logger    *slog.Logger
	Version   string
}

// NewApp returns a fiber app with all routes registered.
func NewApp(cfg *config.Config, deps *Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:             cfg.Server.BodyLimit,
		AppName:               "smoothline",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	SetupRoutes(app, deps)
	return app
}

// SetupRoutes registers all routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(requestid.New())
	app.Use(RequestLogMiddleware(deps.Logger))

	app.Get("/v1/health", HealthHandler(deps))

	v1 := app.Group("/v1")
	v1.Post("/smooth", TransitionHandler(deps, smoothTransition))
	v1.Post("/restore", TransitionHandler(deps, restoreTransition))
	v1.Post("/toggle", TransitionHandler(deps, toggleTransition))
	v1.Post("/update", TransitionHandler(deps, updateTransition))
}
