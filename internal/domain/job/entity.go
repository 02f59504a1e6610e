package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("job not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrNotOwner           = errors.New("not the job owner")
	ErrLocked             = errors.New("job locked")
	ErrInvalidTransition  = errors.New("invalid assignment transition")
)

type Job struct {
	ID                   uuid.UUID
	EmployerID           uuid.UUID
	Title                string
	Description          string
	Location             string
	Price                float64
	RequiredHardSkills   []string
	RequiredSoftSkillIDs []uuid.UUID
	Verified             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Assignment links a job to a candidate student and carries its own
// status, independent of the job's.
type Assignment struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	StudentID uuid.UUID
	Status    AssignmentStatus
	UpdatedAt time.Time
}

type Update struct {
	Title       *string
	Description *string
	Location    *string
	Price       *float64
}

// Locked reports whether the job's top-level fields are frozen: any
// assignment off the rejected branch, or a verified job, locks it.
func Locked(j Job, assignments []Assignment) bool {
	if j.Verified {
		return true
	}
	for _, a := range assignments {
		if a.Status != StatusRejected {
			return true
		}
	}
	return false
}
