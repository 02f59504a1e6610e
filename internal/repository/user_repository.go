package repository

import (
	"context"
	"errors"
	"strings"

	"credtrack/internal/database"
	"credtrack/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, email, password_hash, role, school_id, full_name, major, avatar_cid, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, school_id, full_name, major)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.SchoolID, u.FullName, u.Major,
	)
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, strings.ToLower(email)).Scan(&exists)
	return exists, err
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, in user.UpdateProfile) (user.User, error) {
	var out user.User
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		if in.FullName != nil {
			u.FullName = *in.FullName
		}
		if in.Major != nil {
			u.Major = *in.Major
		}
		if in.AvatarCID != nil {
			u.AvatarCID = in.AvatarCID
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET full_name = $2, major = $3, avatar_cid = $4, updated_at = now() WHERE id = $1`,
			id, u.FullName, u.Major, u.AvatarCID,
		)
		if err != nil {
			return err
		}

		out, err = scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
		return err
	})
	return out, err
}

func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) (user.User, error) {
	var out user.User
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, string(role)); err != nil {
			return err
		}
		var err error
		out, err = scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
		return err
	})
	return out, err
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *PostgresUserRepository) ListStudentsBySchool(ctx context.Context, schoolID uuid.UUID) ([]user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 AND school_id = $2 ORDER BY full_name ASC`,
		string(user.RoleStudent), schoolID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.SchoolID, &u.FullName, &u.Major, &u.AvatarCID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func scanUsers(rows database.Rows) ([]user.User, error) {
	out := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.SchoolID, &u.FullName, &u.Major, &u.AvatarCID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Role = user.Role(role)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
