package handler

import (
	"errors"
	"strings"

	"credtrack/internal/delivery/http/dto"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/domain/course"
	"credtrack/internal/pkg/response"
	"credtrack/internal/pkg/validate"
	courseuc "credtrack/internal/usecase/course"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CourseHandler struct {
	uc *courseuc.Service
}

type createCourseRequest struct {
	MajorID          uuid.UUID `json:"major_id" validate:"required"`
	Title            string    `json:"title" validate:"required"`
	Code             string    `json:"code" validate:"required"`
	SkillTitle       string    `json:"skill_title" validate:"required"`
	SkillDescription string    `json:"skill_description"`
}

type updateCourseRequest struct {
	Title            *string `json:"title"`
	Code             *string `json:"code"`
	SkillTitle       *string `json:"skill_title"`
	SkillDescription *string `json:"skill_description"`
}

func NewCourseHandler(uc *courseuc.Service) *CourseHandler {
	return &CourseHandler{uc: uc}
}

func (h *CourseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *CourseHandler) Create(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	schoolID, err := tenantID(ident)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation,
			"Invalid fields: "+strings.Join(fields, ", "), nil)
	}

	created, err := h.uc.Create(c.Context(), ident.UserID, schoolID, courseuc.CreateInput{
		MajorID:          req.MajorID,
		Title:            req.Title,
		Code:             req.Code,
		SkillTitle:       req.SkillTitle,
		SkillDescription: req.SkillDescription,
	})
	if err != nil {
		return mapCourseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Course created", dto.NewCourseResponse(created))
}

func (h *CourseHandler) List(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	schoolID, err := tenantID(ident)
	if err != nil {
		return err
	}

	courses, err := h.uc.ListForSchool(c.Context(), schoolID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponses(courses))
}

func (h *CourseHandler) Update(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}

	updated, err := h.uc.Update(c.Context(), id, ident.UserID, courseuc.UpdateInput{
		Title:            req.Title,
		Code:             req.Code,
		SkillTitle:       req.SkillTitle,
		SkillDescription: req.SkillDescription,
	})
	if err != nil {
		return mapCourseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponse(updated))
}

func (h *CourseHandler) Delete(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id, ident.UserID); err != nil {
		return mapCourseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Course deleted", nil)
}

func mapCourseError(err error) error {
	switch {
	case errors.Is(err, courseuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	case errors.Is(err, courseuc.ErrUnknownMajor):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Unknown major", err)
	case errors.Is(err, course.ErrNotOwner):
		return middleware.NewAppError(fiber.StatusForbidden, response.KindCrossTenant, "Forbidden", err)
	case errors.Is(err, course.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "Course not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
}
