package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"credtrack/internal/domain/school"
	"credtrack/internal/domain/user"
	"credtrack/internal/pkg/jwt"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]user.User
	byEmail map[string]uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]user.User{}, byEmail: map[string]uuid.UUID{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) UpdateProfile(context.Context, uuid.UUID, user.UpdateProfile) (user.User, error) {
	return user.User{}, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role user.Role) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.Role = role
	f.byID[id] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := f.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, u.Email)
	return nil
}

func (f *fakeUserRepo) List(context.Context, int, int) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) ListStudentsBySchool(context.Context, uuid.UUID) ([]user.User, error) {
	return nil, nil
}

type stubSchoolRepo struct {
	known map[uuid.UUID]struct{}
}

func (s stubSchoolRepo) List(context.Context) ([]school.School, error) { return nil, nil }
func (s stubSchoolRepo) GetByID(context.Context, uuid.UUID) (school.School, error) {
	return school.School{}, school.ErrNotFound
}
func (s stubSchoolRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.known[id]
	return ok, nil
}
func (s stubSchoolRepo) ListMajors(context.Context, uuid.UUID) ([]school.Major, error) {
	return nil, nil
}
func (s stubSchoolRepo) MajorBelongsToSchool(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (s stubSchoolRepo) ListSoftSkills(context.Context) ([]school.SoftSkill, error) {
	return nil, nil
}
func (s stubSchoolRepo) SoftSkillsByIDs(context.Context, []uuid.UUID) ([]school.SoftSkill, error) {
	return nil, nil
}

func newAuthService(repo *fakeUserRepo, schoolID uuid.UUID) *Service {
	return NewService(
		repo,
		stubSchoolRepo{known: map[uuid.UUID]struct{}{schoolID: {}}},
		jwt.NewHMACService("access", "refresh", time.Hour, 24*time.Hour),
	)
}

func TestRegister_StudentNeedsValidSchool(t *testing.T) {
	schoolID := uuid.New()
	svc := newAuthService(newFakeUserRepo(), schoolID)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Email: "s@x.test", Password: "longenough", Role: "student",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing school: expected ErrInvalidInput, got %v", err)
	}

	unknown := uuid.New()
	if _, _, err := svc.Register(ctx, RegisterInput{
		Email: "s@x.test", Password: "longenough", Role: "student", SchoolID: &unknown,
	}); !errors.Is(err, ErrUnknownSchool) {
		t.Fatalf("unknown school: expected ErrUnknownSchool, got %v", err)
	}

	u, pair, err := svc.Register(ctx, RegisterInput{
		Email: "S@X.Test", Password: "longenough", Role: "student", SchoolID: &schoolID, FullName: "Sam",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "s@x.test" {
		t.Fatalf("expected lowered email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("hash must not leave the usecase")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair")
	}
}

func TestRegister_EmployerNeedsNoSchool(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), uuid.New())

	u, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "e@x.test", Password: "longenough", Role: "employer",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.SchoolID != nil {
		t.Fatalf("employer should carry no school")
	}
}

func TestRegister_AdminIsNotSelfService(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), uuid.New())

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@x.test", Password: "longenough", Role: "admin",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for admin role, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), uuid.New())
	ctx := context.Background()

	in := RegisterInput{Email: "e@x.test", Password: "longenough", Role: "employer"}
	if _, _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(ctx, in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), uuid.New())
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "e@x.test", Password: "longenough", Role: "employer"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, LoginInput{Email: "e@x.test", Password: "wrong password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, LoginInput{Email: "nobody@x.test", Password: "longenough"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	u, pair, err := svc.Login(ctx, LoginInput{Email: "E@x.test", Password: "longenough"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Role != user.RoleEmployer || pair.AccessToken == "" {
		t.Fatalf("unexpected login result: %+v", u)
	}
}

func TestRefresh_ReReadsUserRow(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, uuid.New())
	ctx := context.Background()

	u, pair, err := svc.Register(ctx, RegisterInput{Email: "e@x.test", Password: "longenough", Role: "employer"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Access tokens are not refresh tokens.
	if _, _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for access token, got %v", err)
	}

	// A role change lands in the next refresh.
	if _, err := repo.UpdateRole(ctx, u.ID, user.RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	refreshed, next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Role != user.RoleAdmin {
		t.Fatalf("expected refresh to carry the stored role, got %s", refreshed.Role)
	}
	if next.AccessToken == "" || next.RefreshToken == "" {
		t.Fatalf("expected a fresh pair")
	}

	// A deleted account cannot refresh.
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := svc.Refresh(ctx, next.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials after delete, got %v", err)
	}
}
