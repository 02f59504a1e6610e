package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"credtrack/internal/config"
	"credtrack/internal/database/migration"
	"credtrack/internal/database/seeder"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, runs migrations and seeders, starts the
// notification hub and the reconcile schedule, and returns the app with a
// cleanup function.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults(cfg.Seed)}).Run(ctx, c.DB); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("seed: %w", err)
	}

	go c.Hub.Run()

	if err := c.Reconciler.Start(); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("start reconcile schedule: %w", err)
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	routes.NewRegistry(routes.Deps{
		Config:  c.Config,
		DB:      c.DB,
		Cache:   c.Cache,
		Gateway: c.Gateway,
		Hub:     c.Hub,
		Logger:  c.Logger,
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
