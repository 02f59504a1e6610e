package handler

import (
	"context"
	"time"

	"credtrack/internal/database"
	"credtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	status := fiber.StatusOK
	if h.db == nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	data := fiber.Map{"database": dbStatus}
	if status != fiber.StatusOK {
		return response.Error(c, status, response.KindInternal, "Service degraded", data)
	}
	return response.Success(c, status, "Service healthy", data)
}
