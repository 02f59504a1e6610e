package routes

import (
	"log"

	"credtrack/internal/config"
	"credtrack/internal/database"
	"credtrack/internal/delivery/http/handler"
	v1 "credtrack/internal/delivery/http/routes/v1"
	"credtrack/internal/infrastructure/cache"
	"credtrack/internal/infrastructure/gateway"
	"credtrack/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Gateway *gateway.Client
	Hub     *ws.Hub
	Logger  *log.Logger
}

type Registry struct {
	deps   Deps
	health *handler.HealthHandler
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:   deps,
		health: handler.NewHealthHandler(deps.DB),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Config:  r.deps.Config,
		DB:      r.deps.DB,
		Cache:   r.deps.Cache,
		Gateway: r.deps.Gateway,
		Hub:     r.deps.Hub,
		Logger:  r.deps.Logger,
	})
}
