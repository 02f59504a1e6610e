package admin

import (
	"context"
	"errors"
	"testing"

	"credtrack/internal/domain/user"

	"github.com/google/uuid"
)

type recordingUserRepo struct {
	lastLimit  int
	lastOffset int
	users      []user.User

	updated map[uuid.UUID]user.Role
	deleted map[uuid.UUID]bool
}

func newRecordingUserRepo() *recordingUserRepo {
	return &recordingUserRepo{updated: map[uuid.UUID]user.Role{}, deleted: map[uuid.UUID]bool{}}
}

func (r *recordingUserRepo) Create(context.Context, user.User) error { return nil }
func (r *recordingUserRepo) GetByID(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (r *recordingUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (r *recordingUserRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}
func (r *recordingUserRepo) UpdateProfile(context.Context, uuid.UUID, user.UpdateProfile) (user.User, error) {
	return user.User{}, nil
}

func (r *recordingUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role user.Role) (user.User, error) {
	r.updated[id] = role
	return user.User{ID: id, Role: role, PasswordHash: "bcrypt-blob"}, nil
}

func (r *recordingUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleted[id] {
		return user.ErrNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *recordingUserRepo) List(_ context.Context, limit, offset int) ([]user.User, error) {
	r.lastLimit = limit
	r.lastOffset = offset
	return r.users, nil
}

func (r *recordingUserRepo) ListStudentsBySchool(context.Context, uuid.UUID) ([]user.User, error) {
	return nil, nil
}

func TestListUsers_Pagination(t *testing.T) {
	repo := newRecordingUserRepo()
	repo.users = []user.User{{ID: uuid.New(), PasswordHash: "bcrypt-blob"}}
	svc := NewService(repo)
	ctx := context.Background()

	cases := []struct {
		name       string
		limit      int
		wantLimit  int
	}{
		{"zero falls back to default", 0, defaultListLimit},
		{"negative falls back to default", -5, defaultListLimit},
		{"in range passes through", 25, 25},
		{"above cap is clamped", 1000, maxListLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users, err := svc.ListUsers(ctx, tc.limit, 10)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if repo.lastLimit != tc.wantLimit {
				t.Fatalf("expected limit %d, got %d", tc.wantLimit, repo.lastLimit)
			}
			if repo.lastOffset != 10 {
				t.Fatalf("expected offset 10, got %d", repo.lastOffset)
			}
			for _, u := range users {
				if u.PasswordHash != "" {
					t.Fatalf("hash leaked into listing")
				}
			}
		})
	}

	if _, err := svc.ListUsers(ctx, 10, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative offset: expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateRole(t *testing.T) {
	repo := newRecordingUserRepo()
	svc := NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	if _, err := svc.UpdateRole(ctx, id, "superuser"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Fatalf("invalid role must not hit the repository")
	}

	u, err := svc.UpdateRole(ctx, id, "school")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if u.Role != user.RoleSchool {
		t.Fatalf("expected school role, got %s", u.Role)
	}
	if u.PasswordHash != "" {
		t.Fatalf("hash leaked out of UpdateRole")
	}
	if repo.updated[id] != user.RoleSchool {
		t.Fatalf("role not persisted")
	}
}

func TestDeleteUser(t *testing.T) {
	repo := newRecordingUserRepo()
	svc := NewService(repo)
	ctx := context.Background()
	id := uuid.New()

	if err := svc.DeleteUser(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteUser(ctx, id); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
