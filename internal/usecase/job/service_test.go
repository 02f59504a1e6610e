package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"credtrack/internal/domain/job"
	"credtrack/internal/domain/school"
	"credtrack/internal/domain/skill"
	"credtrack/internal/domain/user"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	jobs        map[uuid.UUID]job.Job
	assignments map[uuid.UUID]map[uuid.UUID]job.Assignment
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:        map[uuid.UUID]job.Job{},
		assignments: map[uuid.UUID]map[uuid.UUID]job.Assignment{},
	}
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]job.Job, error) {
	var out []job.Job
	for _, j := range f.jobs {
		if j.EmployerID == employerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListOpen(context.Context) ([]job.Job, error) {
	var out []job.Job
	for _, j := range f.jobs {
		if !j.Verified {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Update(ctx context.Context, id, employerID uuid.UUID, in job.Update) (job.Job, error) {
	j, err := f.GetByID(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if j.EmployerID != employerID {
		return job.Job{}, job.ErrNotOwner
	}
	all, _ := f.ListAssignments(ctx, id)
	if job.Locked(j, all) {
		return job.Job{}, job.ErrLocked
	}
	if in.Title != nil {
		j.Title = *in.Title
	}
	if in.Price != nil {
		j.Price = *in.Price
	}
	f.jobs[id] = j
	return j, nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id, employerID uuid.UUID) error {
	j, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if j.EmployerID != employerID {
		return job.ErrNotOwner
	}
	all, _ := f.ListAssignments(ctx, id)
	if job.Locked(j, all) {
		return job.ErrLocked
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobRepo) ListAssignments(_ context.Context, jobID uuid.UUID) ([]job.Assignment, error) {
	var out []job.Assignment
	for _, a := range f.assignments[jobID] {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeJobRepo) GetAssignment(_ context.Context, jobID, studentID uuid.UUID) (job.Assignment, error) {
	a, ok := f.assignments[jobID][studentID]
	if !ok {
		return job.Assignment{}, job.ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeJobRepo) ListAssignmentsByStudent(_ context.Context, studentID uuid.UUID) ([]job.Assignment, error) {
	var out []job.Assignment
	for _, m := range f.assignments {
		if a, ok := m[studentID]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Assign(ctx context.Context, jobID, studentID uuid.UUID) (job.Assignment, error) {
	j, err := f.GetByID(ctx, jobID)
	if err != nil {
		return job.Assignment{}, err
	}
	if j.Verified {
		return job.Assignment{}, job.ErrLocked
	}
	if a, ok := f.assignments[jobID][studentID]; ok {
		return a, nil
	}
	a := job.Assignment{ID: uuid.New(), JobID: jobID, StudentID: studentID, Status: job.StatusAssigned, UpdatedAt: time.Now()}
	if f.assignments[jobID] == nil {
		f.assignments[jobID] = map[uuid.UUID]job.Assignment{}
	}
	f.assignments[jobID][studentID] = a
	return a, nil
}

func (f *fakeJobRepo) Transition(ctx context.Context, jobID, studentID uuid.UUID, next job.AssignmentStatus, actor job.Actor) (job.Assignment, error) {
	a, err := f.GetAssignment(ctx, jobID, studentID)
	if err != nil {
		return job.Assignment{}, err
	}
	if a.Status == next {
		return a, nil
	}
	if !job.CanTransition(a.Status, next, actor) {
		return job.Assignment{}, job.ErrInvalidTransition
	}
	a.Status = next
	f.assignments[jobID][studentID] = a
	if next == job.StatusVerified {
		j := f.jobs[jobID]
		j.Verified = true
		f.jobs[jobID] = j
	}
	return a, nil
}

type stubUserRepo struct {
	users map[uuid.UUID]user.User
}

func (s stubUserRepo) Create(context.Context, user.User) error { return nil }
func (s stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (s stubUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (s stubUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (s stubUserRepo) UpdateProfile(context.Context, uuid.UUID, user.UpdateProfile) (user.User, error) {
	return user.User{}, nil
}
func (s stubUserRepo) UpdateRole(context.Context, uuid.UUID, user.Role) (user.User, error) {
	return user.User{}, nil
}
func (s stubUserRepo) Delete(context.Context, uuid.UUID) error             { return nil }
func (s stubUserRepo) List(context.Context, int, int) ([]user.User, error) { return nil, nil }
func (s stubUserRepo) ListStudentsBySchool(_ context.Context, schoolID uuid.UUID) ([]user.User, error) {
	var out []user.User
	for _, u := range s.users {
		if u.Role == user.RoleStudent && u.SchoolID != nil && *u.SchoolID == schoolID {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubSchoolRepo struct {
	softSkills map[uuid.UUID]school.SoftSkill
	schools    map[uuid.UUID]struct{}
}

func (s stubSchoolRepo) List(context.Context) ([]school.School, error) { return nil, nil }
func (s stubSchoolRepo) GetByID(context.Context, uuid.UUID) (school.School, error) {
	return school.School{}, school.ErrNotFound
}
func (s stubSchoolRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.schools[id]
	return ok, nil
}
func (s stubSchoolRepo) ListMajors(context.Context, uuid.UUID) ([]school.Major, error) {
	return nil, nil
}
func (s stubSchoolRepo) MajorBelongsToSchool(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (s stubSchoolRepo) ListSoftSkills(context.Context) ([]school.SoftSkill, error) { return nil, nil }
func (s stubSchoolRepo) SoftSkillsByIDs(_ context.Context, ids []uuid.UUID) ([]school.SoftSkill, error) {
	var out []school.SoftSkill
	for _, id := range ids {
		if ss, ok := s.softSkills[id]; ok {
			out = append(out, ss)
		}
	}
	return out, nil
}

type stubSkillRepo struct {
	bySchool map[uuid.UUID][]skill.Skill
}

func (s stubSkillRepo) Create(context.Context, skill.CreateInput) (skill.Skill, error) {
	return skill.Skill{}, nil
}
func (s stubSkillRepo) GetByID(context.Context, uuid.UUID) (skill.Skill, error) {
	return skill.Skill{}, skill.ErrNotFound
}
func (s stubSkillRepo) ListByOwner(context.Context, uuid.UUID) ([]skill.Skill, error) {
	return nil, nil
}
func (s stubSkillRepo) ListPendingBySchool(context.Context, uuid.UUID) ([]skill.Skill, error) {
	return nil, nil
}
func (s stubSkillRepo) ListApprovedByOwner(context.Context, uuid.UUID) ([]skill.Skill, error) {
	return nil, nil
}
func (s stubSkillRepo) ListApprovedBySchool(_ context.Context, schoolID uuid.UUID) ([]skill.Skill, error) {
	return s.bySchool[schoolID], nil
}
func (s stubSkillRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s stubSkillRepo) Review(context.Context, skill.ReviewInput) (skill.Skill, error) {
	return skill.Skill{}, nil
}

type recordedNotification struct {
	userID uuid.UUID
	jobID  uuid.UUID
	status string
}

type spyNotifier struct {
	assignments []recordedNotification
}

func (s *spyNotifier) NotifySkillReviewed(uuid.UUID, uuid.UUID, string) {}
func (s *spyNotifier) NotifyAssignmentUpdated(userID, jobID uuid.UUID, status string) {
	s.assignments = append(s.assignments, recordedNotification{userID, jobID, status})
}

func newTestService(repo *fakeJobRepo, users stubUserRepo, schools stubSchoolRepo, skills stubSkillRepo, notifier *spyNotifier) *Service {
	return NewService(repo, users, schools, skills, nil, notifier)
}

func seedJob(repo *fakeJobRepo, employerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	repo.jobs[id] = job.Job{ID: id, EmployerID: employerID, Title: "Landing page", RequiredHardSkills: []string{"Go"}, Price: 100}
	return id
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newFakeJobRepo(), stubUserRepo{}, stubSchoolRepo{}, stubSkillRepo{}, &spyNotifier{})

	cases := []CreateInput{
		{Title: "", RequiredHardSkills: []string{"Go"}},
		{Title: "x", RequiredHardSkills: nil},
		{Title: "x", RequiredHardSkills: []string{"Go"}, Price: -1},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), uuid.New(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestCreate_UnknownSoftSkill(t *testing.T) {
	svc := newTestService(newFakeJobRepo(), stubUserRepo{}, stubSchoolRepo{}, stubSkillRepo{}, &spyNotifier{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Title:                "x",
		RequiredHardSkills:   []string{"Go"},
		RequiredSoftSkillIDs: []uuid.UUID{uuid.New()},
	})
	if !errors.Is(err, ErrUnknownSoftSkill) {
		t.Fatalf("expected ErrUnknownSoftSkill, got %v", err)
	}
}

func TestAssign_OwnerAndRoleChecks(t *testing.T) {
	repo := newFakeJobRepo()
	employerID := uuid.New()
	studentID := uuid.New()
	jobID := seedJob(repo, employerID)

	users := stubUserRepo{users: map[uuid.UUID]user.User{
		studentID: {ID: studentID, Role: user.RoleStudent},
	}}
	notifier := &spyNotifier{}
	svc := newTestService(repo, users, stubSchoolRepo{}, stubSkillRepo{}, notifier)

	if _, err := svc.Assign(context.Background(), jobID, uuid.New(), studentID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for foreign employer, got %v", err)
	}
	if _, err := svc.Assign(context.Background(), jobID, employerID, uuid.New()); !errors.Is(err, ErrUnknownStudent) {
		t.Fatalf("expected ErrUnknownStudent, got %v", err)
	}

	a, err := svc.Assign(context.Background(), jobID, employerID, studentID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if a.Status != job.StatusAssigned {
		t.Fatalf("expected assigned, got %s", a.Status)
	}
	if len(notifier.assignments) != 1 || notifier.assignments[0].userID != studentID {
		t.Fatalf("expected one notification to the student, got %+v", notifier.assignments)
	}

	// Repeat is idempotent.
	again, err := svc.Assign(context.Background(), jobID, employerID, studentID)
	if err != nil {
		t.Fatalf("re-assign: %v", err)
	}
	if again.ID != a.ID {
		t.Fatalf("expected the stored assignment back")
	}
}

func TestLifecycle_AssignAcceptCompleteVerify(t *testing.T) {
	repo := newFakeJobRepo()
	employerID := uuid.New()
	studentID := uuid.New()
	jobID := seedJob(repo, employerID)

	otherStudent := uuid.New()
	users := stubUserRepo{users: map[uuid.UUID]user.User{
		studentID:    {ID: studentID, Role: user.RoleStudent},
		otherStudent: {ID: otherStudent, Role: user.RoleStudent},
	}}
	svc := newTestService(repo, users, stubSchoolRepo{}, stubSkillRepo{}, &spyNotifier{})
	ctx := context.Background()

	if _, err := svc.Assign(ctx, jobID, employerID, studentID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// Completing before accepting is illegal.
	if _, err := svc.Complete(ctx, jobID, studentID); !errors.Is(err, job.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if a, err := svc.Accept(ctx, jobID, studentID); err != nil || a.Status != job.StatusAccepted {
		t.Fatalf("accept: %v %v", a.Status, err)
	}

	// A locked job rejects edits.
	newTitle := "changed"
	if _, err := svc.Update(ctx, jobID, employerID, UpdateInput{Title: &newTitle}); !errors.Is(err, job.ErrLocked) {
		t.Fatalf("expected ErrLocked on edit, got %v", err)
	}
	if err := svc.Delete(ctx, jobID, employerID); !errors.Is(err, job.ErrLocked) {
		t.Fatalf("expected ErrLocked on delete, got %v", err)
	}

	if a, err := svc.Complete(ctx, jobID, studentID); err != nil || a.Status != job.StatusCompleted {
		t.Fatalf("complete: %v %v", a.Status, err)
	}

	// Only the owning employer verifies.
	if _, err := svc.Verify(ctx, jobID, uuid.New(), studentID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	a, err := svc.Verify(ctx, jobID, employerID, studentID)
	if err != nil || a.Status != job.StatusVerified {
		t.Fatalf("verify: %v %v", a.Status, err)
	}

	j, _ := repo.GetByID(ctx, jobID)
	if !j.Verified {
		t.Fatalf("verifying the assignment should mark the job verified")
	}

	// Repeating the final transition is a no-op, not an error.
	if a, err := svc.Verify(ctx, jobID, employerID, studentID); err != nil || a.Status != job.StatusVerified {
		t.Fatalf("repeat verify: %v %v", a.Status, err)
	}

	// A verified job takes no new assignments.
	if _, err := svc.Assign(ctx, jobID, employerID, otherStudent); !errors.Is(err, job.ErrLocked) {
		t.Fatalf("expected ErrLocked assigning on a verified job, got %v", err)
	}
}

func TestRejectionDoesNotLock(t *testing.T) {
	repo := newFakeJobRepo()
	employerID := uuid.New()
	studentID := uuid.New()
	jobID := seedJob(repo, employerID)

	users := stubUserRepo{users: map[uuid.UUID]user.User{
		studentID: {ID: studentID, Role: user.RoleStudent},
	}}
	svc := newTestService(repo, users, stubSchoolRepo{}, stubSkillRepo{}, &spyNotifier{})
	ctx := context.Background()

	if _, err := svc.Assign(ctx, jobID, employerID, studentID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.Reject(ctx, jobID, studentID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	newTitle := "still editable"
	if _, err := svc.Update(ctx, jobID, employerID, UpdateInput{Title: &newTitle}); err != nil {
		t.Fatalf("rejected assignment should not lock the job: %v", err)
	}
}

func TestCandidates_RanksBySkillOverlap(t *testing.T) {
	repo := newFakeJobRepo()
	employerID := uuid.New()
	schoolID := uuid.New()
	jobID := seedJob(repo, employerID)

	match := uuid.New()
	noMatch := uuid.New()
	users := stubUserRepo{users: map[uuid.UUID]user.User{
		noMatch: {ID: noMatch, Role: user.RoleStudent, SchoolID: &schoolID, FullName: "B"},
		match:   {ID: match, Role: user.RoleStudent, SchoolID: &schoolID, FullName: "A"},
	}}
	schools := stubSchoolRepo{schools: map[uuid.UUID]struct{}{schoolID: {}}}
	score := 90.0
	now := time.Now()
	skills := stubSkillRepo{bySchool: map[uuid.UUID][]skill.Skill{
		schoolID: {{OwnerID: match, Title: "Golang", Score: &score, ReviewedAt: &now}},
	}}

	svc := newTestService(repo, users, schools, skills, &spyNotifier{})

	ranked, scores, err := svc.Candidates(context.Background(), jobID, employerID, schoolID)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected both students, got %d", len(ranked))
	}
	if ranked[0].StudentID != match {
		t.Fatalf("expected the matching student first")
	}
	if scores[0].FinalScore <= scores[1].FinalScore {
		t.Fatalf("expected descending scores")
	}

	if _, _, err := svc.Candidates(context.Background(), jobID, uuid.New(), schoolID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, _, err := svc.Candidates(context.Background(), jobID, employerID, uuid.New()); !errors.Is(err, ErrUnknownSchool) {
		t.Fatalf("expected ErrUnknownSchool, got %v", err)
	}
}
