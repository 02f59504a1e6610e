package course

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("course not found")
	ErrNotOwner = errors.New("not the course creator")
)

// Course carries the skill template stamped onto new skill records, and a
// running count of distinct students that have submitted against it.
type Course struct {
	ID               uuid.UUID
	SchoolID         uuid.UUID
	CreatorID        uuid.UUID
	MajorID          uuid.UUID
	Title            string
	Code             string
	SkillTitle       string
	SkillDescription string
	StudentCount     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Update struct {
	Title            *string
	Code             *string
	SkillTitle       *string
	SkillDescription *string
}

type Repository interface {
	Create(ctx context.Context, c Course) error
	GetByID(ctx context.Context, id uuid.UUID) (Course, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]Course, error)

	// Update and Delete re-verify the creator inside the mutation's
	// transaction; ErrNotOwner when the row belongs to someone else.
	Update(ctx context.Context, id, creatorID uuid.UUID, in Update) (Course, error)
	Delete(ctx context.Context, id, creatorID uuid.UUID) error

	// ReconcileStudentCounts recomputes student_count from distinct skill
	// owners, returning the number of corrected rows.
	ReconcileStudentCounts(ctx context.Context) (int64, error)
}
