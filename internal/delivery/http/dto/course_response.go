package dto

import (
	"time"

	"credtrack/internal/domain/course"
	"credtrack/internal/domain/school"

	"github.com/google/uuid"
)

type CourseResponse struct {
	ID               uuid.UUID `json:"id"`
	SchoolID         uuid.UUID `json:"school_id"`
	CreatorID        uuid.UUID `json:"creator_id"`
	MajorID          uuid.UUID `json:"major_id"`
	Title            string    `json:"title"`
	Code             string    `json:"code"`
	SkillTitle       string    `json:"skill_title"`
	SkillDescription string    `json:"skill_description"`
	StudentCount     int       `json:"student_count"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewCourseResponse(c course.Course) CourseResponse {
	return CourseResponse{
		ID:               c.ID,
		SchoolID:         c.SchoolID,
		CreatorID:        c.CreatorID,
		MajorID:          c.MajorID,
		Title:            c.Title,
		Code:             c.Code,
		SkillTitle:       c.SkillTitle,
		SkillDescription: c.SkillDescription,
		StudentCount:     c.StudentCount,
		CreatedAt:        c.CreatedAt,
	}
}

func NewCourseResponses(cs []course.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

type SchoolResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func NewSchoolResponses(ss []school.School) []SchoolResponse {
	out := make([]SchoolResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, SchoolResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

type SoftSkillResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
