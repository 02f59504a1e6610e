package repository

import (
	"context"
	"errors"

	"credtrack/internal/database"
	"credtrack/internal/domain/school"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresSchoolRepository struct {
	db database.DB
}

func NewPostgresSchoolRepository(db database.DB) *PostgresSchoolRepository {
	return &PostgresSchoolRepository{db: db}
}

func (r *PostgresSchoolRepository) List(ctx context.Context) ([]school.School, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM schools ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]school.School, 0)
	for rows.Next() {
		var s school.School
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSchoolRepository) GetByID(ctx context.Context, id uuid.UUID) (school.School, error) {
	var s school.School
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM schools WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return school.School{}, school.ErrNotFound
		}
		return school.School{}, err
	}
	return s, nil
}

func (r *PostgresSchoolRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schools WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresSchoolRepository) ListMajors(ctx context.Context, schoolID uuid.UUID) ([]school.Major, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, school_id, name FROM majors WHERE school_id = $1 ORDER BY name ASC`, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]school.Major, 0)
	for rows.Next() {
		var m school.Major
		if err := rows.Scan(&m.ID, &m.SchoolID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSchoolRepository) MajorBelongsToSchool(ctx context.Context, majorID, schoolID uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM majors WHERE id = $1 AND school_id = $2)`, majorID, schoolID).Scan(&ok)
	return ok, err
}

func (r *PostgresSchoolRepository) ListSoftSkills(ctx context.Context) ([]school.SoftSkill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM soft_skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSoftSkills(rows)
}

func (r *PostgresSchoolRepository) SoftSkillsByIDs(ctx context.Context, ids []uuid.UUID) ([]school.SoftSkill, error) {
	if len(ids) == 0 {
		return []school.SoftSkill{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, name FROM soft_skills WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSoftSkills(rows)
}

func scanSoftSkills(rows database.Rows) ([]school.SoftSkill, error) {
	out := make([]school.SoftSkill, 0)
	for rows.Next() {
		var s school.SoftSkill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
