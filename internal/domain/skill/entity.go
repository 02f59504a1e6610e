package skill

import (
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), true
	}
	return "", false
}

// Verification is the two-step review lifecycle: a record is created
// pending and decided exactly once.
type Verification string

const (
	VerificationPending  Verification = "pending"
	VerificationApproved Verification = "approved"
	VerificationRejected Verification = "rejected"
)

func ParseVerification(s string) (Verification, bool) {
	switch Verification(s) {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return Verification(s), true
	}
	return "", false
}

// Skill is a competency claim a student submits against a course. Title
// and description are stamped from the course template at submission time.
type Skill struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	CourseID      uuid.UUID
	SchoolID      uuid.UUID
	Title         string
	Description   string
	Level         Level
	AttachmentCID *string
	SoftSkillIDs  []uuid.UUID

	Verified   Verification
	ReviewedBy *uuid.UUID
	ReviewedAt *time.Time
	HardScores map[string]float64
	SoftScores map[string]float64
	Score      *float64

	CreatedAt time.Time
}

const (
	MinSoftSkills = 1
	MaxSoftSkills = 5
)
