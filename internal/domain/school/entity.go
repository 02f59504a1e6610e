package school

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("school not found")

// School is the tenant: it scopes students, courses, and skill records.
type School struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Major struct {
	ID       uuid.UUID
	SchoolID uuid.UUID
	Name     string
}

// SoftSkill is a global catalog entry referenced by skill records and jobs.
type SoftSkill struct {
	ID   uuid.UUID
	Name string
}

type Repository interface {
	List(ctx context.Context) ([]School, error)
	GetByID(ctx context.Context, id uuid.UUID) (School, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	ListMajors(ctx context.Context, schoolID uuid.UUID) ([]Major, error)
	MajorBelongsToSchool(ctx context.Context, majorID, schoolID uuid.UUID) (bool, error)

	ListSoftSkills(ctx context.Context) ([]SoftSkill, error)
	SoftSkillsByIDs(ctx context.Context, ids []uuid.UUID) ([]SoftSkill, error)
}
