package handler

import (
	"errors"

	"credtrack/internal/delivery/http/dto"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/domain/user"
	"credtrack/internal/pkg/response"
	studentuc "credtrack/internal/usecase/student"

	"github.com/gofiber/fiber/v3"
)

type StudentHandler struct {
	uc *studentuc.Service
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Major     *string `json:"major"`
	AvatarCID *string `json:"avatar_cid"`
}

func NewStudentHandler(uc *studentuc.Service) *StudentHandler {
	return &StudentHandler{uc: uc}
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Get("/me/courses", h.ListMyCourses)
}

func (h *StudentHandler) GetMe(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	u, err := h.uc.GetMe(c.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "User not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *StudentHandler) UpdateMe(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}

	u, err := h.uc.UpdateMe(c.Context(), ident.UserID, studentuc.UpdateProfileInput{
		FullName:  req.FullName,
		Major:     req.Major,
		AvatarCID: req.AvatarCID,
	})
	if err != nil {
		switch {
		case errors.Is(err, studentuc.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
		case errors.Is(err, user.ErrNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "User not found", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}

func (h *StudentHandler) ListMyCourses(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	schoolID, err := tenantID(ident)
	if err != nil {
		return err
	}

	courses, err := h.uc.ListMyCourses(c.Context(), schoolID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponses(courses))
}
