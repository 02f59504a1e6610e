package handler

import (
	"errors"
	"strconv"

	"credtrack/internal/delivery/http/dto"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/domain/user"
	"credtrack/internal/pkg/response"
	adminuc "credtrack/internal/usecase/admin"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc *adminuc.Service
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func NewAdminHandler(uc *adminuc.Service) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users", h.ListUsers)
	r.Put("/users/:id/role", h.UpdateRole)
	r.Delete("/users/:id", h.DeleteUser)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	users, err := h.uc.ListUsers(c.Context(), limit, offset)
	if err != nil {
		if errors.Is(err, adminuc.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid pagination", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponses(users))
}

func (h *AdminHandler) UpdateRole(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}

	u, err := h.uc.UpdateRole(c.Context(), id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, adminuc.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Unknown role", err)
		case errors.Is(err, user.ErrNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "User not found", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
		}
	}

	return response.Success(c, fiber.StatusOK, "Role updated", dto.NewUserResponse(u))
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "User not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
	return response.Success(c, fiber.StatusOK, "User deleted", nil)
}
