package dto

import (
	"time"

	"credtrack/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID            uuid.UUID          `json:"id"`
	OwnerID       uuid.UUID          `json:"owner_id"`
	CourseID      uuid.UUID          `json:"course_id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Level         string             `json:"level"`
	AttachmentCID *string            `json:"attachment_cid,omitempty"`
	AttachmentURL string             `json:"attachment_url,omitempty"`
	SoftSkillIDs  []uuid.UUID        `json:"soft_skill_ids"`
	Verified      string             `json:"verified"`
	ReviewedBy    *uuid.UUID         `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time         `json:"reviewed_at,omitempty"`
	HardScores    map[string]float64 `json:"hard_scores,omitempty"`
	SoftScores    map[string]float64 `json:"soft_scores,omitempty"`
	Score         *float64           `json:"score,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

func NewSkillResponse(s skill.Skill, attachmentURL string) SkillResponse {
	return SkillResponse{
		ID:            s.ID,
		OwnerID:       s.OwnerID,
		CourseID:      s.CourseID,
		Title:         s.Title,
		Description:   s.Description,
		Level:         string(s.Level),
		AttachmentCID: s.AttachmentCID,
		AttachmentURL: attachmentURL,
		SoftSkillIDs:  s.SoftSkillIDs,
		Verified:      string(s.Verified),
		ReviewedBy:    s.ReviewedBy,
		ReviewedAt:    s.ReviewedAt,
		HardScores:    s.HardScores,
		SoftScores:    s.SoftScores,
		Score:         s.Score,
		CreatedAt:     s.CreatedAt,
	}
}
