package skill

import (
	"context"

	"github.com/google/uuid"
)

type CreateInput struct {
	OwnerID       uuid.UUID
	CourseID      uuid.UUID
	SchoolID      uuid.UUID
	Title         string
	Description   string
	Level         Level
	AttachmentCID *string
	SoftSkillIDs  []uuid.UUID
}

type ReviewInput struct {
	SkillID    uuid.UUID
	ReviewerID uuid.UUID
	Review     Review
	Score      *float64
}

type Repository interface {
	// Create inserts the record and, when this is the owner's first
	// submission for the course, increments the course's student counter.
	// Both writes share one transaction.
	Create(ctx context.Context, in CreateInput) (Skill, error)

	GetByID(ctx context.Context, id uuid.UUID) (Skill, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Skill, error)
	ListPendingBySchool(ctx context.Context, schoolID uuid.UUID) ([]Skill, error)
	ListApprovedByOwner(ctx context.Context, ownerID uuid.UUID) ([]Skill, error)
	ListApprovedBySchool(ctx context.Context, schoolID uuid.UUID) ([]Skill, error)

	// Delete re-verifies ownership in the deleting transaction;
	// ErrNotOwner when the row belongs to another student.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// Review decides a pending record under a row lock. Deciding an
	// already-decided record returns the stored row with
	// ErrAlreadyReviewed; callers treat a matching verdict as idempotent.
	Review(ctx context.Context, in ReviewInput) (Skill, error)
}
