package handler

import (
	"errors"
	"strings"

	"credtrack/internal/delivery/http/dto"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/domain/skill"
	"credtrack/internal/pkg/response"
	"credtrack/internal/pkg/validate"
	skilluc "credtrack/internal/usecase/skill"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc *skilluc.Service
}

type submitSkillRequest struct {
	CourseID      uuid.UUID   `json:"course_id" validate:"required"`
	Level         string      `json:"level" validate:"required"`
	SoftSkillIDs  []uuid.UUID `json:"soft_skill_ids" validate:"required,min=1,max=5"`
	AttachmentCID *string     `json:"attachment_cid"`
}

type reviewSkillRequest struct {
	Verdict    string             `json:"verdict" validate:"required"`
	HardScores map[string]float64 `json:"hard_scores"`
	SoftScores map[string]float64 `json:"soft_scores"`
}

func NewSkillHandler(uc *skilluc.Service) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// RegisterStudentRoutes mounts the owner-side operations. Gates are
// per-route: the reviewer routes live under the same prefix, and a
// group-level gate would swallow them.
func (h *SkillHandler) RegisterStudentRoutes(r fiber.Router, mw ...any) {
	if r == nil {
		return
	}

	r.Post("/", h.Submit, mw...)
	r.Get("/", h.ListMine, mw...)
	r.Delete("/:id", h.Delete, mw...)
}

// RegisterReviewerRoutes mounts the review-side operations.
func (h *SkillHandler) RegisterReviewerRoutes(r fiber.Router, mw ...any) {
	if r == nil {
		return
	}

	r.Get("/pending", h.ListPending, mw...)
	r.Put("/:id/review", h.Review, mw...)
}

func (h *SkillHandler) Submit(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	schoolID, err := tenantID(ident)
	if err != nil {
		return err
	}

	var req submitSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation,
			"Invalid fields: "+strings.Join(fields, ", "), nil)
	}

	created, err := h.uc.Submit(c.Context(), ident.UserID, schoolID, skilluc.SubmitInput{
		CourseID:      req.CourseID,
		Level:         req.Level,
		SoftSkillIDs:  req.SoftSkillIDs,
		AttachmentCID: req.AttachmentCID,
	})
	if err != nil {
		return mapSkillError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Skill submitted", dto.NewSkillResponse(created, h.uc.AttachmentURL(created)))
}

func (h *SkillHandler) ListMine(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), ident.UserID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.skillResponses(items))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id, ident.UserID); err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill deleted", nil)
}

func (h *SkillHandler) ListPending(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	schoolID, err := tenantID(ident)
	if err != nil {
		return err
	}

	items, err := h.uc.ListPending(c.Context(), schoolID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.skillResponses(items))
}

func (h *SkillHandler) Review(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	schoolID, err := tenantID(ident)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req reviewSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation,
			"Invalid fields: "+strings.Join(fields, ", "), nil)
	}

	decided, err := h.uc.Review(c.Context(), ident.UserID, schoolID, id, skilluc.ReviewInput{
		Verdict:    req.Verdict,
		HardScores: req.HardScores,
		SoftScores: req.SoftScores,
	})
	if err != nil {
		return mapSkillError(err)
	}

	return response.Success(c, fiber.StatusOK, "Skill reviewed", dto.NewSkillResponse(decided, h.uc.AttachmentURL(decided)))
}

func (h *SkillHandler) skillResponses(items []skill.Skill) []dto.SkillResponse {
	out := make([]dto.SkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewSkillResponse(it, h.uc.AttachmentURL(it)))
	}
	return out
}

func mapSkillError(err error) error {
	switch {
	case errors.Is(err, skilluc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	case errors.Is(err, skilluc.ErrUnknownCourse):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Unknown course", err)
	case errors.Is(err, skilluc.ErrUnknownSoftSkill):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Unknown soft skill", err)
	case errors.Is(err, skilluc.ErrBadAttachment):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Attachment not resolvable", err)
	case errors.Is(err, skilluc.ErrIncompleteRubric):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindIncompleteRubric, "Score missing for declared skills", err)
	case errors.Is(err, skilluc.ErrAlreadyReviewed):
		return middleware.NewAppError(fiber.StatusConflict, response.KindInvalidTransition, "Skill already reviewed", err)
	case errors.Is(err, skilluc.ErrCrossTenantAccess):
		return middleware.NewAppError(fiber.StatusForbidden, response.KindCrossTenant, "Forbidden", err)
	case errors.Is(err, skill.ErrNotOwner):
		return middleware.NewAppError(fiber.StatusForbidden, response.KindCrossTenant, "Forbidden", err)
	case errors.Is(err, skill.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "Skill not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
}
