package employer

import (
	"context"
	"errors"

	"credtrack/internal/domain/school"
	"credtrack/internal/domain/skill"
	"credtrack/internal/domain/user"
	"credtrack/internal/infrastructure/cache"

	"github.com/google/uuid"
)

var ErrUnknownSchool = errors.New("unknown school")

// StudentSummary is what an employer sees when browsing a school: the
// profile plus approved credentials only.
type StudentSummary struct {
	ID             uuid.UUID
	FullName       string
	Major          string
	AvatarCID      *string
	ApprovedSkills []skill.Skill
}

type Service struct {
	users   user.Repository
	schools school.Repository
	skills  skill.Repository
	cache   *cache.Redis
}

func NewService(users user.Repository, schools school.Repository, skills skill.Repository, c *cache.Redis) *Service {
	return &Service{users: users, schools: schools, skills: skills, cache: c}
}

func (s *Service) ListSchools(ctx context.Context) ([]school.School, error) {
	return s.schools.List(ctx)
}

// ListStudents lists a school's students with their approved skills.
// Results are cached briefly; the listing is read-heavy and tolerates
// slight staleness.
func (s *Service) ListStudents(ctx context.Context, schoolID uuid.UUID) ([]StudentSummary, error) {
	exists, err := s.schools.ExistsByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownSchool
	}

	key := cache.SchoolStudentsKey(schoolID.String())
	var cached []StudentSummary
	if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
		return cached, nil
	}

	students, err := s.users.ListStudentsBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	out := make([]StudentSummary, 0, len(students))
	for _, st := range students {
		approved, err := s.skills.ListApprovedByOwner(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, StudentSummary{
			ID:             st.ID,
			FullName:       st.FullName,
			Major:          st.Major,
			AvatarCID:      st.AvatarCID,
			ApprovedSkills: approved,
		})
	}

	_ = s.cache.SetJSON(ctx, key, out, 0)
	return out, nil
}
