package seeder

import (
	"context"
	"fmt"

	"credtrack/internal/database"
	"credtrack/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// AdminSeeder creates the bootstrap admin account. Admin accounts cannot
// be self-registered, so a fresh deployment needs one seeded before the
// admin endpoints are usable.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Email == "" || s.Password == "" {
		return nil
	}

	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role", "created_at"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, role, full_name)
		 VALUES (gen_random_uuid(), $1, $2, $3, 'Administrator')
		 ON CONFLICT (email) DO NOTHING`,
		s.Email,
		string(hash),
		string(user.RoleAdmin),
	)
	return err
}
