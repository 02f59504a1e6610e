package handler

import (
	"context"
	"errors"
	"strings"

	"credtrack/internal/delivery/http/dto"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/domain/job"
	"credtrack/internal/domain/user"
	"credtrack/internal/pkg/response"
	"credtrack/internal/pkg/validate"
	jobuc "credtrack/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc *jobuc.Service
}

type createJobRequest struct {
	Title                string      `json:"title" validate:"required"`
	Description          string      `json:"description"`
	Location             string      `json:"location"`
	Price                float64     `json:"price" validate:"gte=0"`
	RequiredHardSkills   []string    `json:"required_hard_skills" validate:"required,min=1"`
	RequiredSoftSkillIDs []uuid.UUID `json:"required_soft_skill_ids"`
}

type updateJobRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Price       *float64 `json:"price"`
}

func NewJobHandler(uc *jobuc.Service) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterEmployerRoutes mounts the owner-side lifecycle. The gates are
// per-route because the student routes share the same prefix; a
// group-level gate would apply to every request under it.
func (h *JobHandler) RegisterEmployerRoutes(r fiber.Router, mw ...any) {
	if r == nil {
		return
	}

	r.Post("/", h.Create, mw...)
	r.Get("/", h.ListEmployer, mw...)
	r.Get("/:id", h.Get, mw...)
	r.Put("/:id", h.Update, mw...)
	r.Delete("/:id", h.Delete, mw...)
	r.Get("/:id/candidates", h.Candidates, mw...)
	r.Put("/:id/assign/:studentId", h.Assign, mw...)
	r.Put("/:id/verify/:studentId", h.Verify, mw...)
}

// RegisterStudentRoutes mounts browsing and the candidate-side
// transitions.
func (h *JobHandler) RegisterStudentRoutes(r fiber.Router, mw ...any) {
	if r == nil {
		return
	}

	r.Get("/open", h.ListOpen, mw...)
	r.Get("/assignments", h.ListMyAssignments, mw...)
	r.Put("/:id/accept", h.Accept, mw...)
	r.Put("/:id/reject", h.Reject, mw...)
	r.Put("/:id/complete", h.Complete, mw...)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation,
			"Invalid fields: "+strings.Join(fields, ", "), nil)
	}

	created, err := h.uc.Create(c.Context(), ident.UserID, jobuc.CreateInput{
		Title:                req.Title,
		Description:          req.Description,
		Location:             req.Location,
		Price:                req.Price,
		RequiredHardSkills:   req.RequiredHardSkills,
		RequiredSoftSkillIDs: req.RequiredSoftSkillIDs,
	})
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(created))
}

func (h *JobHandler) ListEmployer(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	jobs, err := h.uc.ListForEmployer(c.Context(), ident.UserID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *JobHandler) ListOpen(c fiber.Ctx) error {
	jobs, err := h.uc.ListOpen(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, assignments, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobError(err)
	}
	if j.EmployerID != ident.UserID {
		return middleware.NewAppError(fiber.StatusForbidden, response.KindCrossTenant, "Forbidden", nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobDetailResponse{
		Job:         dto.NewJobResponse(j),
		Assignments: dto.NewAssignmentResponses(assignments),
	})
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	}

	updated, err := h.uc.Update(c.Context(), id, ident.UserID, jobuc.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(updated))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id, ident.UserID); err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}

type candidateResponse struct {
	StudentID    uuid.UUID `json:"student_id"`
	FullName     string    `json:"full_name"`
	Major        string    `json:"major"`
	HardSkills   []string  `json:"hard_skills"`
	MatchScore   float64   `json:"match_score"`
	HardCoverage float64   `json:"hard_coverage"`
	SoftCoverage float64   `json:"soft_coverage"`
}

func (h *JobHandler) Candidates(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	schoolID, err := uuid.Parse(c.Query("schoolId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid schoolId", err)
	}

	ranked, scores, err := h.uc.Candidates(c.Context(), id, ident.UserID, schoolID)
	if err != nil {
		if errors.Is(err, jobuc.ErrUnknownSchool) {
			return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "School not found", err)
		}
		return mapJobError(err)
	}

	out := make([]candidateResponse, 0, len(ranked))
	for i, cand := range ranked {
		resp := candidateResponse{
			StudentID:  cand.StudentID,
			FullName:   cand.FullName,
			Major:      cand.Major,
			HardSkills: cand.HardSkills,
		}
		if i < len(scores) {
			resp.MatchScore = scores[i].FinalScore
			resp.HardCoverage = scores[i].HardCoverage
			resp.SoftCoverage = scores[i].SoftCoverage
		}
		out = append(out, resp)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Assign(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	studentID, err := uuidParam(c, "studentId")
	if err != nil {
		return err
	}

	a, err := h.uc.Assign(c.Context(), id, ident.UserID, studentID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "Student assigned", dto.NewAssignmentResponse(a))
}

func (h *JobHandler) Accept(c fiber.Ctx) error {
	return h.studentTransition(c, h.uc.Accept)
}

func (h *JobHandler) Reject(c fiber.Ctx) error {
	return h.studentTransition(c, h.uc.Reject)
}

func (h *JobHandler) Complete(c fiber.Ctx) error {
	return h.studentTransition(c, h.uc.Complete)
}

func (h *JobHandler) Verify(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	studentID, err := uuidParam(c, "studentId")
	if err != nil {
		return err
	}

	a, err := h.uc.Verify(c.Context(), id, ident.UserID, studentID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponse(a))
}

func (h *JobHandler) ListMyAssignments(c fiber.Ctx) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	as, err := h.uc.ListMyAssignments(c.Context(), ident.UserID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponses(as))
}

func (h *JobHandler) studentTransition(c fiber.Ctx, fn func(ctx context.Context, jobID, studentID uuid.UUID) (job.Assignment, error)) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	a, err := fn(c.Context(), id, ident.UserID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponse(a))
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, jobuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Invalid request payload", err)
	case errors.Is(err, jobuc.ErrUnknownSoftSkill):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Unknown soft skill", err)
	case errors.Is(err, jobuc.ErrUnknownStudent):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Unknown student", err)
	case errors.Is(err, job.ErrLocked):
		return middleware.NewAppError(fiber.StatusForbidden, response.KindJobLocked, "Job is locked", err)
	case errors.Is(err, job.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, response.KindInvalidTransition, "Invalid assignment transition", err)
	case errors.Is(err, job.ErrNotOwner):
		return middleware.NewAppError(fiber.StatusForbidden, response.KindCrossTenant, "Forbidden", err)
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "Job not found", err)
	case errors.Is(err, job.ErrAssignmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "Assignment not found", err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusBadRequest, response.KindValidation, "Unknown student", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
}
