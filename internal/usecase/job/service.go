package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"credtrack/internal/domain/job"
	"credtrack/internal/domain/school"
	"credtrack/internal/domain/skill"
	"credtrack/internal/domain/user"
	"credtrack/internal/infrastructure/cache"
	"credtrack/internal/matching"
	"credtrack/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownSoftSkill  = errors.New("unknown soft skill")
	ErrUnknownStudent    = errors.New("unknown student")
	ErrUnknownSchool     = errors.New("unknown school")
	ErrNotOwner          = job.ErrNotOwner
	ErrLocked            = job.ErrLocked
	ErrInvalidTransition = job.ErrInvalidTransition
	ErrInternal          = errors.New("internal error")
)

const transitionLockTTL = 3 * time.Second

type CreateInput struct {
	Title                string
	Description          string
	Location             string
	Price                float64
	RequiredHardSkills   []string
	RequiredSoftSkillIDs []uuid.UUID
}

type UpdateInput struct {
	Title       *string
	Description *string
	Location    *string
	Price       *float64
}

type Service struct {
	jobs     job.Repository
	users    user.Repository
	schools  school.Repository
	skills   skill.Repository
	locks    *cache.Redis
	notifier ws.Notifier
}

func NewService(jobs job.Repository, users user.Repository, schools school.Repository, skills skill.Repository, locks *cache.Redis, notifier ws.Notifier) *Service {
	return &Service{jobs: jobs, users: users, schools: schools, skills: skills, locks: locks, notifier: notifier}
}

func (s *Service) Create(ctx context.Context, employerID uuid.UUID, in CreateInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(in.RequiredHardSkills) == 0 || in.Price < 0 {
		return job.Job{}, ErrInvalidInput
	}

	if len(in.RequiredSoftSkillIDs) > 0 {
		known, err := s.schools.SoftSkillsByIDs(ctx, in.RequiredSoftSkillIDs)
		if err != nil {
			return job.Job{}, ErrInternal
		}
		if len(known) != len(in.RequiredSoftSkillIDs) {
			return job.Job{}, ErrUnknownSoftSkill
		}
	}

	j := job.Job{
		ID:                   uuid.New(),
		EmployerID:           employerID,
		Title:                title,
		Description:          strings.TrimSpace(in.Description),
		Location:             strings.TrimSpace(in.Location),
		Price:                in.Price,
		RequiredHardSkills:   in.RequiredHardSkills,
		RequiredSoftSkillIDs: in.RequiredSoftSkillIDs,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}
	return s.jobs.GetByID(ctx, j.ID)
}

func (s *Service) ListForEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Job, error) {
	return s.jobs.ListByEmployer(ctx, employerID)
}

func (s *Service) ListOpen(ctx context.Context) ([]job.Job, error) {
	return s.jobs.ListOpen(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Job, []job.Assignment, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, nil, err
	}
	assignments, err := s.jobs.ListAssignments(ctx, id)
	if err != nil {
		return job.Job{}, nil, err
	}
	return j, assignments, nil
}

// Update edits top-level fields; the repository rejects it with ErrLocked
// once any assignment has left the rejected branch.
func (s *Service) Update(ctx context.Context, id, employerID uuid.UUID, in UpdateInput) (job.Job, error) {
	if in.Title == nil && in.Description == nil && in.Location == nil && in.Price == nil {
		return job.Job{}, ErrInvalidInput
	}
	if in.Price != nil && *in.Price < 0 {
		return job.Job{}, ErrInvalidInput
	}
	return s.jobs.Update(ctx, id, employerID, job.Update{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Price:       in.Price,
	})
}

func (s *Service) Delete(ctx context.Context, id, employerID uuid.UUID) error {
	return s.jobs.Delete(ctx, id, employerID)
}

// Assign creates an assignment for a student; repeating it returns the
// existing assignment unchanged.
func (s *Service) Assign(ctx context.Context, jobID, employerID, studentID uuid.UUID) (job.Assignment, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return job.Assignment{}, err
	}
	if j.EmployerID != employerID {
		return job.Assignment{}, ErrNotOwner
	}

	candidate, err := s.users.GetByID(ctx, studentID)
	if err != nil || candidate.Role != user.RoleStudent {
		return job.Assignment{}, ErrUnknownStudent
	}

	a, err := s.jobs.Assign(ctx, jobID, studentID)
	if err != nil {
		return job.Assignment{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyAssignmentUpdated(studentID, jobID, string(a.Status))
	}
	return a, nil
}

// Accept, Reject, and Complete are the student-driven transitions on the
// student's own assignment.
func (s *Service) Accept(ctx context.Context, jobID, studentID uuid.UUID) (job.Assignment, error) {
	return s.studentTransition(ctx, jobID, studentID, job.StatusAccepted)
}

func (s *Service) Reject(ctx context.Context, jobID, studentID uuid.UUID) (job.Assignment, error) {
	return s.studentTransition(ctx, jobID, studentID, job.StatusRejected)
}

func (s *Service) Complete(ctx context.Context, jobID, studentID uuid.UUID) (job.Assignment, error) {
	return s.studentTransition(ctx, jobID, studentID, job.StatusCompleted)
}

// Verify is the employer-driven close: completed -> verified, which also
// freezes the job.
func (s *Service) Verify(ctx context.Context, jobID, employerID, studentID uuid.UUID) (job.Assignment, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return job.Assignment{}, err
	}
	if j.EmployerID != employerID {
		return job.Assignment{}, ErrNotOwner
	}

	a, err := s.transition(ctx, jobID, studentID, job.StatusVerified, job.ActorEmployer)
	if err != nil {
		return job.Assignment{}, err
	}
	if s.notifier != nil {
		s.notifier.NotifyAssignmentUpdated(studentID, jobID, string(a.Status))
	}
	return a, nil
}

// Candidates ranks a school's students against the job's skill
// requirements using their approved records.
func (s *Service) Candidates(ctx context.Context, jobID, employerID, schoolID uuid.UUID) ([]matching.Candidate, []matching.CandidateScore, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if j.EmployerID != employerID {
		return nil, nil, ErrNotOwner
	}

	exists, err := s.schools.ExistsByID(ctx, schoolID)
	if err != nil {
		return nil, nil, ErrInternal
	}
	if !exists {
		return nil, nil, ErrUnknownSchool
	}

	students, err := s.users.ListStudentsBySchool(ctx, schoolID)
	if err != nil {
		return nil, nil, ErrInternal
	}
	approved, err := s.skills.ListApprovedBySchool(ctx, schoolID)
	if err != nil {
		return nil, nil, ErrInternal
	}

	byOwner := make(map[uuid.UUID][]skill.Skill, len(students))
	for _, rec := range approved {
		byOwner[rec.OwnerID] = append(byOwner[rec.OwnerID], rec)
	}

	candidates := make([]matching.Candidate, 0, len(students))
	for _, st := range students {
		candidates = append(candidates, buildCandidate(st, byOwner[st.ID]))
	}

	ranked, scores := matching.Rank(candidates, matching.Requirements{
		HardSkills:   j.RequiredHardSkills,
		SoftSkillIDs: j.RequiredSoftSkillIDs,
	})
	return ranked, scores, nil
}

func buildCandidate(st user.User, records []skill.Skill) matching.Candidate {
	c := matching.Candidate{
		StudentID: st.ID,
		FullName:  st.FullName,
		Major:     st.Major,
	}

	softSeen := make(map[uuid.UUID]struct{})
	scoreTotal := 0.0
	scoreCount := 0
	for _, rec := range records {
		c.HardSkills = append(c.HardSkills, rec.Title)
		for _, id := range rec.SoftSkillIDs {
			if _, ok := softSeen[id]; ok {
				continue
			}
			softSeen[id] = struct{}{}
			c.SoftSkillIDs = append(c.SoftSkillIDs, id)
		}
		if rec.Score != nil {
			scoreTotal += *rec.Score
			scoreCount++
		}
		if rec.ReviewedAt != nil && rec.ReviewedAt.After(c.LatestApprovedAt) {
			c.LatestApprovedAt = *rec.ReviewedAt
		}
	}
	if scoreCount > 0 {
		c.AverageScore = scoreTotal / float64(scoreCount)
	}
	return c
}

func (s *Service) ListMyAssignments(ctx context.Context, studentID uuid.UUID) ([]job.Assignment, error) {
	return s.jobs.ListAssignmentsByStudent(ctx, studentID)
}

func (s *Service) studentTransition(ctx context.Context, jobID, studentID uuid.UUID, next job.AssignmentStatus) (job.Assignment, error) {
	return s.transition(ctx, jobID, studentID, next, job.ActorStudent)
}

func (s *Service) transition(ctx context.Context, jobID, studentID uuid.UUID, next job.AssignmentStatus, actor job.Actor) (job.Assignment, error) {
	// Best-effort double-submit absorber; the row lock inside
	// Transition is the actual correctness boundary. The key includes
	// the target status so only an identical repeat short-circuits.
	acquired, _ := s.locks.SetIfNotExists(ctx,
		cache.TransitionLockKey(jobID.String(), studentID.String(), string(next)), string(next), transitionLockTTL)
	if !acquired {
		return s.jobs.GetAssignment(ctx, jobID, studentID)
	}

	return s.jobs.Transition(ctx, jobID, studentID, next, actor)
}
