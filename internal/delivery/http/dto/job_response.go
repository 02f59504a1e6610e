package dto

import (
	"time"

	"credtrack/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID                   uuid.UUID   `json:"id"`
	EmployerID           uuid.UUID   `json:"employer_id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Location             string      `json:"location"`
	Price                float64     `json:"price"`
	RequiredHardSkills   []string    `json:"required_hard_skills"`
	RequiredSoftSkillIDs []uuid.UUID `json:"required_soft_skill_ids"`
	Verified             bool        `json:"verified"`
	CreatedAt            time.Time   `json:"created_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:                   j.ID,
		EmployerID:           j.EmployerID,
		Title:                j.Title,
		Description:          j.Description,
		Location:             j.Location,
		Price:                j.Price,
		RequiredHardSkills:   j.RequiredHardSkills,
		RequiredSoftSkillIDs: j.RequiredSoftSkillIDs,
		Verified:             j.Verified,
		CreatedAt:            j.CreatedAt,
	}
}

func NewJobResponses(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type AssignmentResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	StudentID uuid.UUID `json:"student_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAssignmentResponse(a job.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		StudentID: a.StudentID,
		Status:    string(a.Status),
		UpdatedAt: a.UpdatedAt,
	}
}

func NewAssignmentResponses(as []job.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(as))
	for _, a := range as {
		out = append(out, NewAssignmentResponse(a))
	}
	return out
}

type JobDetailResponse struct {
	Job         JobResponse          `json:"job"`
	Assignments []AssignmentResponse `json:"assignments"`
}
