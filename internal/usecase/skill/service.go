package skill

import (
	"context"
	"errors"
	"strings"

	"credtrack/internal/domain"
	"credtrack/internal/domain/course"
	"credtrack/internal/domain/school"
	"credtrack/internal/domain/skill"
	"credtrack/internal/infrastructure/gateway"
	"credtrack/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownCourse     = errors.New("unknown course")
	ErrUnknownSoftSkill  = errors.New("unknown soft skill")
	ErrBadAttachment     = errors.New("attachment not resolvable")
	ErrIncompleteRubric  = skill.ErrIncompleteRubric
	ErrAlreadyReviewed   = skill.ErrAlreadyReviewed
	ErrCrossTenantAccess = domain.ErrCrossTenant
	ErrInternal          = errors.New("internal error")
)

type SubmitInput struct {
	CourseID      uuid.UUID
	Level         string
	SoftSkillIDs  []uuid.UUID
	AttachmentCID *string
}

type ReviewInput struct {
	Verdict    string
	HardScores map[string]float64
	SoftScores map[string]float64
}

type Service struct {
	skills   skill.Repository
	courses  course.Repository
	schools  school.Repository
	gateway  *gateway.Client
	notifier ws.Notifier
}

func NewService(skills skill.Repository, courses course.Repository, schools school.Repository, gw *gateway.Client, notifier ws.Notifier) *Service {
	return &Service{skills: skills, courses: courses, schools: schools, gateway: gw, notifier: notifier}
}

// Submit creates a pending skill record for the calling student, stamping
// title and description from the course template. The course must belong
// to the caller's school.
func (s *Service) Submit(ctx context.Context, ownerID, schoolID uuid.UUID, in SubmitInput) (skill.Skill, error) {
	level, ok := skill.ParseLevel(in.Level)
	if !ok {
		return skill.Skill{}, ErrInvalidInput
	}
	if len(in.SoftSkillIDs) < skill.MinSoftSkills || len(in.SoftSkillIDs) > skill.MaxSoftSkills {
		return skill.Skill{}, ErrInvalidInput
	}

	known, err := s.schools.SoftSkillsByIDs(ctx, in.SoftSkillIDs)
	if err != nil {
		return skill.Skill{}, ErrInternal
	}
	if len(known) != len(dedupe(in.SoftSkillIDs)) {
		return skill.Skill{}, ErrUnknownSoftSkill
	}

	c, err := s.courses.GetByID(ctx, in.CourseID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return skill.Skill{}, ErrUnknownCourse
		}
		return skill.Skill{}, ErrInternal
	}
	if c.SchoolID != schoolID {
		return skill.Skill{}, ErrCrossTenantAccess
	}

	if in.AttachmentCID != nil {
		cid := strings.TrimSpace(*in.AttachmentCID)
		if cid == "" {
			return skill.Skill{}, ErrInvalidInput
		}
		if err := s.gateway.Stat(ctx, cid); err != nil {
			return skill.Skill{}, ErrBadAttachment
		}
		in.AttachmentCID = &cid
	}

	created, err := s.skills.Create(ctx, skill.CreateInput{
		OwnerID:       ownerID,
		CourseID:      c.ID,
		SchoolID:      c.SchoolID,
		Title:         c.SkillTitle,
		Description:   c.SkillDescription,
		Level:         level,
		AttachmentCID: in.AttachmentCID,
		SoftSkillIDs:  dedupe(in.SoftSkillIDs),
	})
	if err != nil {
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}

func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]skill.Skill, error) {
	return s.skills.ListByOwner(ctx, ownerID)
}

func (s *Service) ListPending(ctx context.Context, schoolID uuid.UUID) ([]skill.Skill, error) {
	return s.skills.ListPendingBySchool(ctx, schoolID)
}

// Delete removes the caller's own record. skill.ErrNotOwner surfaces when
// the record belongs to another student.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.skills.Delete(ctx, id, ownerID)
}

// Review decides a pending record. The reviewer must share the owning
// student's school; approval requires a complete rubric. Repeating an
// identical verdict returns the stored record unchanged.
func (s *Service) Review(ctx context.Context, reviewerID, reviewerSchoolID, skillID uuid.UUID, in ReviewInput) (skill.Skill, error) {
	verdict, ok := skill.ParseVerification(in.Verdict)
	if !ok || verdict == skill.VerificationPending {
		return skill.Skill{}, ErrInvalidInput
	}

	target, err := s.skills.GetByID(ctx, skillID)
	if err != nil {
		return skill.Skill{}, err
	}
	if target.SchoolID != reviewerSchoolID {
		return skill.Skill{}, ErrCrossTenantAccess
	}

	review := skill.Review{
		Verdict:    verdict,
		HardScores: in.HardScores,
		SoftScores: in.SoftScores,
	}
	if missing := skill.MissingRubricKeys(target, review); len(missing) > 0 {
		return skill.Skill{}, ErrIncompleteRubric
	}

	var score *float64
	if verdict == skill.VerificationApproved {
		v := skill.AggregateScore(review)
		score = &v
	}

	decided, err := s.skills.Review(ctx, skill.ReviewInput{
		SkillID:    skillID,
		ReviewerID: reviewerID,
		Review:     review,
		Score:      score,
	})
	if err != nil {
		if errors.Is(err, skill.ErrAlreadyReviewed) {
			if decided.Verified == verdict {
				return decided, nil
			}
			return skill.Skill{}, ErrAlreadyReviewed
		}
		return skill.Skill{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifySkillReviewed(decided.OwnerID, decided.ID, string(decided.Verified))
	}
	return decided, nil
}

// AttachmentURL resolves a record's pointer through the configured
// gateway; empty when there is no attachment or no gateway.
func (s *Service) AttachmentURL(rec skill.Skill) string {
	if rec.AttachmentCID == nil {
		return ""
	}
	return s.gateway.ResolveURL(*rec.AttachmentCID)
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
