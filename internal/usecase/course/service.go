package course

import (
	"context"
	"errors"
	"strings"

	"credtrack/internal/domain/course"
	"credtrack/internal/domain/school"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownMajor = errors.New("unknown major")
	ErrInternal     = errors.New("internal error")
)

type CreateInput struct {
	MajorID          uuid.UUID
	Title            string
	Code             string
	SkillTitle       string
	SkillDescription string
}

type UpdateInput struct {
	Title            *string
	Code             *string
	SkillTitle       *string
	SkillDescription *string
}

type Service struct {
	courses course.Repository
	schools school.Repository
}

func NewService(courses course.Repository, schools school.Repository) *Service {
	return &Service{courses: courses, schools: schools}
}

// Create stamps the creator and their school onto the course; the major
// must belong to the same school.
func (s *Service) Create(ctx context.Context, creatorID, schoolID uuid.UUID, in CreateInput) (course.Course, error) {
	title := strings.TrimSpace(in.Title)
	code := strings.TrimSpace(in.Code)
	skillTitle := strings.TrimSpace(in.SkillTitle)
	if title == "" || code == "" || skillTitle == "" {
		return course.Course{}, ErrInvalidInput
	}

	ok, err := s.schools.MajorBelongsToSchool(ctx, in.MajorID, schoolID)
	if err != nil {
		return course.Course{}, ErrInternal
	}
	if !ok {
		return course.Course{}, ErrUnknownMajor
	}

	c := course.Course{
		ID:               uuid.New(),
		SchoolID:         schoolID,
		CreatorID:        creatorID,
		MajorID:          in.MajorID,
		Title:            title,
		Code:             code,
		SkillTitle:       skillTitle,
		SkillDescription: strings.TrimSpace(in.SkillDescription),
	}
	if err := s.courses.Create(ctx, c); err != nil {
		return course.Course{}, ErrInternal
	}
	return s.courses.GetByID(ctx, c.ID)
}

func (s *Service) ListForSchool(ctx context.Context, schoolID uuid.UUID) ([]course.Course, error) {
	return s.courses.ListBySchool(ctx, schoolID)
}

func (s *Service) Update(ctx context.Context, id, creatorID uuid.UUID, in UpdateInput) (course.Course, error) {
	if in.Title == nil && in.Code == nil && in.SkillTitle == nil && in.SkillDescription == nil {
		return course.Course{}, ErrInvalidInput
	}
	return s.courses.Update(ctx, id, creatorID, course.Update{
		Title:            in.Title,
		Code:             in.Code,
		SkillTitle:       in.SkillTitle,
		SkillDescription: in.SkillDescription,
	})
}

func (s *Service) Delete(ctx context.Context, id, creatorID uuid.UUID) error {
	return s.courses.Delete(ctx, id, creatorID)
}
