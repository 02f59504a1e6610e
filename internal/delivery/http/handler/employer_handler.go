package handler

import (
	"errors"

	"credtrack/internal/delivery/http/dto"
	"credtrack/internal/delivery/http/middleware"
	"credtrack/internal/pkg/response"
	employeruc "credtrack/internal/usecase/employer"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EmployerHandler struct {
	uc *employeruc.Service
}

type studentSummaryResponse struct {
	ID             uuid.UUID           `json:"id"`
	FullName       string              `json:"full_name"`
	Major          string              `json:"major,omitempty"`
	AvatarCID      *string             `json:"avatar_cid,omitempty"`
	ApprovedSkills []dto.SkillResponse `json:"approved_skills"`
}

func NewEmployerHandler(uc *employeruc.Service) *EmployerHandler {
	return &EmployerHandler{uc: uc}
}

// RegisterPublicRoutes mounts the unauthenticated tenant listing.
func (h *EmployerHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/schools", h.ListSchools)
}

// RegisterRoutes mounts the authenticated employer views. Gates are
// per-route since the prefix also carries the public school listing.
func (h *EmployerHandler) RegisterRoutes(r fiber.Router, mw ...any) {
	if r == nil {
		return
	}
	r.Get("/schools/:schoolId/students", h.ListStudents, mw...)
}

func (h *EmployerHandler) ListSchools(c fiber.Ctx) error {
	schools, err := h.uc.ListSchools(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSchoolResponses(schools))
}

func (h *EmployerHandler) ListStudents(c fiber.Ctx) error {
	schoolID, err := uuidParam(c, "schoolId")
	if err != nil {
		return err
	}

	students, err := h.uc.ListStudents(c.Context(), schoolID)
	if err != nil {
		if errors.Is(err, employeruc.ErrUnknownSchool) {
			return middleware.NewAppError(fiber.StatusNotFound, response.KindNotFound, "School not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.KindInternal, response.MessageInternalServerError, err)
	}

	out := make([]studentSummaryResponse, 0, len(students))
	for _, st := range students {
		skills := make([]dto.SkillResponse, 0, len(st.ApprovedSkills))
		for _, sk := range st.ApprovedSkills {
			skills = append(skills, dto.NewSkillResponse(sk, ""))
		}
		out = append(out, studentSummaryResponse{
			ID:             st.ID,
			FullName:       st.FullName,
			Major:          st.Major,
			AvatarCID:      st.AvatarCID,
			ApprovedSkills: skills,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
