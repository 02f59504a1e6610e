package repository

import (
	"context"
	"errors"

	"credtrack/internal/database"
	"credtrack/internal/domain/course"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const courseColumns = `id, school_id, creator_id, major_id, title, code, skill_title, skill_description, student_count, created_at, updated_at`

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) Create(ctx context.Context, c course.Course) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO courses (id, school_id, creator_id, major_id, title, code, skill_title, skill_description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.SchoolID, c.CreatorID, c.MajorID, c.Title, c.Code, c.SkillTitle, c.SkillDescription,
	)
	return err
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (course.Course, error) {
	return scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

func (r *PostgresCourseRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]course.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE school_id = $1 ORDER BY created_at DESC`, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		var c course.Course
		if err := rows.Scan(&c.ID, &c.SchoolID, &c.CreatorID, &c.MajorID, &c.Title, &c.Code,
			&c.SkillTitle, &c.SkillDescription, &c.StudentCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) Update(ctx context.Context, id, creatorID uuid.UUID, in course.Update) (course.Course, error) {
	var out course.Course
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		c, err := scanCourse(tx.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if c.CreatorID != creatorID {
			return course.ErrNotOwner
		}

		if in.Title != nil {
			c.Title = *in.Title
		}
		if in.Code != nil {
			c.Code = *in.Code
		}
		if in.SkillTitle != nil {
			c.SkillTitle = *in.SkillTitle
		}
		if in.SkillDescription != nil {
			c.SkillDescription = *in.SkillDescription
		}

		_, err = tx.Exec(ctx,
			`UPDATE courses SET title = $2, code = $3, skill_title = $4, skill_description = $5, updated_at = now()
			 WHERE id = $1`,
			id, c.Title, c.Code, c.SkillTitle, c.SkillDescription,
		)
		if err != nil {
			return err
		}

		out, err = scanCourse(tx.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
		return err
	})
	return out, err
}

func (r *PostgresCourseRepository) Delete(ctx context.Context, id, creatorID uuid.UUID) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		c, err := scanCourse(tx.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if c.CreatorID != creatorID {
			return course.ErrNotOwner
		}
		_, err = tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		return err
	})
}

func (r *PostgresCourseRepository) ReconcileStudentCounts(ctx context.Context) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE courses c SET student_count = sub.actual
		 FROM (
		   SELECT co.id, COALESCE(COUNT(DISTINCT s.owner_id), 0) AS actual
		   FROM courses co LEFT JOIN skills s ON s.course_id = co.id
		   GROUP BY co.id
		 ) sub
		 WHERE c.id = sub.id AND c.student_count <> sub.actual`,
	)
}

func scanCourse(row database.Row) (course.Course, error) {
	var c course.Course
	err := row.Scan(&c.ID, &c.SchoolID, &c.CreatorID, &c.MajorID, &c.Title, &c.Code,
		&c.SkillTitle, &c.SkillDescription, &c.StudentCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, err
	}
	return c, nil
}
