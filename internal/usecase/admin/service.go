package admin

import (
	"context"
	"errors"

	"credtrack/internal/domain/user"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]user.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		return nil, ErrInvalidInput
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// UpdateRole is the single sanctioned way a role changes after creation.
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (user.User, error) {
	parsed, ok := user.ParseRole(role)
	if !ok {
		return user.User{}, ErrInvalidInput
	}

	u, err := s.users.UpdateRole(ctx, id, parsed)
	if err != nil {
		return user.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}
