package job

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]Job, error)
	ListOpen(ctx context.Context) ([]Job, error)

	// Update and Delete run under a row lock: ownership and the lock
	// predicate are re-checked against the stored row before mutating.
	Update(ctx context.Context, id, employerID uuid.UUID, in Update) (Job, error)
	Delete(ctx context.Context, id, employerID uuid.UUID) error

	ListAssignments(ctx context.Context, jobID uuid.UUID) ([]Assignment, error)
	GetAssignment(ctx context.Context, jobID, studentID uuid.UUID) (Assignment, error)
	ListAssignmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]Assignment, error)

	// Assign creates an assignment in the assigned state; re-assigning
	// the same student returns the existing row unchanged.
	Assign(ctx context.Context, jobID, studentID uuid.UUID) (Assignment, error)

	// Transition applies next under a row lock, enforcing the legality
	// table. cur == next returns the stored row (idempotent repeat);
	// anything else illegal returns ErrInvalidTransition. Moving to
	// verified also marks the job verified in the same transaction.
	Transition(ctx context.Context, jobID, studentID uuid.UUID, next AssignmentStatus, actor Actor) (Assignment, error)
}
