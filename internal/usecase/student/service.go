package student

import (
	"context"
	"errors"
	"strings"

	"credtrack/internal/domain/course"
	"credtrack/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type UpdateProfileInput struct {
	FullName  *string
	Major     *string
	AvatarCID *string
}

type Service struct {
	users   user.Repository
	courses course.Repository
}

func NewService(users user.Repository, courses course.Repository) *Service {
	return &Service{users: users, courses: courses}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// UpdateMe mutates profile fields only; role and tenant are out of reach.
func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	if in.FullName == nil && in.Major == nil && in.AvatarCID == nil {
		return user.User{}, ErrInvalidInput
	}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) == "" {
		return user.User{}, ErrInvalidInput
	}

	u, err := s.users.UpdateProfile(ctx, userID, user.UpdateProfile{
		FullName:  in.FullName,
		Major:     in.Major,
		AvatarCID: in.AvatarCID,
	})
	if err != nil {
		return user.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// ListMyCourses lists the courses of the caller's own school.
func (s *Service) ListMyCourses(ctx context.Context, schoolID uuid.UUID) ([]course.Course, error) {
	return s.courses.ListBySchool(ctx, schoolID)
}
