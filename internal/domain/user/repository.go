package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type UpdateProfile struct {
	FullName  *string
	Major     *string
	AvatarCID *string
}

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfile) (User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, limit, offset int) ([]User, error)
	ListStudentsBySchool(ctx context.Context, schoolID uuid.UUID) ([]User, error)
}
