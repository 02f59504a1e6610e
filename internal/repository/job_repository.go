package repository

import (
	"context"
	"errors"

	"credtrack/internal/database"
	"credtrack/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, employer_id, title, description, location, price, required_hard_skills, required_soft_skill_ids, verified, created_at, updated_at`

const assignmentColumns = `id, job_id, student_id, status, updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, employer_id, title, description, location, price, required_hard_skills, required_soft_skill_ids)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		j.ID, j.EmployerID, j.Title, j.Description, j.Location, j.Price, j.RequiredHardSkills, j.RequiredSoftSkillIDs,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
}

func (r *PostgresJobRepository) ListOpen(ctx context.Context) ([]job.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE verified = false ORDER BY created_at DESC`)
}

func (r *PostgresJobRepository) Update(ctx context.Context, id, employerID uuid.UUID, in job.Update) (job.Job, error) {
	var out job.Job
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		j, assignments, err := lockJob(ctx, tx, id)
		if err != nil {
			return err
		}
		if j.EmployerID != employerID {
			return job.ErrNotOwner
		}
		if job.Locked(j, assignments) {
			return job.ErrLocked
		}

		if in.Title != nil {
			j.Title = *in.Title
		}
		if in.Description != nil {
			j.Description = *in.Description
		}
		if in.Location != nil {
			j.Location = *in.Location
		}
		if in.Price != nil {
			j.Price = *in.Price
		}

		_, err = tx.Exec(ctx,
			`UPDATE jobs SET title = $2, description = $3, location = $4, price = $5, updated_at = now() WHERE id = $1`,
			id, j.Title, j.Description, j.Location, j.Price,
		)
		if err != nil {
			return err
		}

		out, err = scanJob(tx.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
		return err
	})
	return out, err
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id, employerID uuid.UUID) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		j, assignments, err := lockJob(ctx, tx, id)
		if err != nil {
			return err
		}
		if j.EmployerID != employerID {
			return job.ErrNotOwner
		}
		if job.Locked(j, assignments) {
			return job.ErrLocked
		}
		_, err = tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		return err
	})
}

func (r *PostgresJobRepository) ListAssignments(ctx context.Context, jobID uuid.UUID) ([]job.Assignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assignmentColumns+` FROM job_assignments WHERE job_id = $1 ORDER BY updated_at ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *PostgresJobRepository) ListAssignmentsByStudent(ctx context.Context, studentID uuid.UUID) ([]job.Assignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assignmentColumns+` FROM job_assignments WHERE student_id = $1 ORDER BY updated_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *PostgresJobRepository) GetAssignment(ctx context.Context, jobID, studentID uuid.UUID) (job.Assignment, error) {
	return scanAssignment(r.db.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM job_assignments WHERE job_id = $1 AND student_id = $2`, jobID, studentID))
}

func (r *PostgresJobRepository) Assign(ctx context.Context, jobID, studentID uuid.UUID) (job.Assignment, error) {
	var out job.Assignment
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		// The job row lock serializes assignment creation against
		// concurrent edits and transitions.
		j, _, err := lockJob(ctx, tx, jobID)
		if err != nil {
			return err
		}
		if j.Verified {
			return job.ErrLocked
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_assignments (id, job_id, student_id, status)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (job_id, student_id) DO NOTHING`,
			uuid.New(), jobID, studentID, string(job.StatusAssigned),
		)
		if err != nil {
			return err
		}

		out, err = scanAssignment(tx.QueryRow(ctx,
			`SELECT `+assignmentColumns+` FROM job_assignments WHERE job_id = $1 AND student_id = $2`, jobID, studentID))
		return err
	})
	return out, err
}

func (r *PostgresJobRepository) Transition(ctx context.Context, jobID, studentID uuid.UUID, next job.AssignmentStatus, actor job.Actor) (job.Assignment, error) {
	var out job.Assignment
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		if _, _, err := lockJob(ctx, tx, jobID); err != nil {
			return err
		}

		cur, err := scanAssignment(tx.QueryRow(ctx,
			`SELECT `+assignmentColumns+` FROM job_assignments WHERE job_id = $1 AND student_id = $2 FOR UPDATE`,
			jobID, studentID))
		if err != nil {
			return err
		}

		if cur.Status == next {
			// Idempotent repeat: report current state, change nothing.
			out = cur
			return nil
		}
		if !job.CanTransition(cur.Status, next, actor) {
			return job.ErrInvalidTransition
		}

		_, err = tx.Exec(ctx,
			`UPDATE job_assignments SET status = $3, updated_at = now() WHERE job_id = $1 AND student_id = $2`,
			jobID, studentID, string(next),
		)
		if err != nil {
			return err
		}

		if next == job.StatusVerified {
			if _, err := tx.Exec(ctx, `UPDATE jobs SET verified = true, updated_at = now() WHERE id = $1`, jobID); err != nil {
				return err
			}
		}

		out, err = scanAssignment(tx.QueryRow(ctx,
			`SELECT `+assignmentColumns+` FROM job_assignments WHERE job_id = $1 AND student_id = $2`, jobID, studentID))
		return err
	})
	return out, err
}

func lockJob(ctx context.Context, tx database.Tx, id uuid.UUID) (job.Job, []job.Assignment, error) {
	j, err := scanJob(tx.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return job.Job{}, nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+assignmentColumns+` FROM job_assignments WHERE job_id = $1`, id)
	if err != nil {
		return job.Job{}, nil, err
	}
	defer rows.Close()

	assignments, err := scanAssignments(rows)
	if err != nil {
		return job.Job{}, nil, err
	}
	return j, assignments, nil
}

func (r *PostgresJobRepository) listJobs(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Location, &j.Price,
			&j.RequiredHardSkills, &j.RequiredSoftSkillIDs, &j.Verified, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Location, &j.Price,
		&j.RequiredHardSkills, &j.RequiredSoftSkillIDs, &j.Verified, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func scanAssignment(row database.Row) (job.Assignment, error) {
	var a job.Assignment
	var status string
	err := row.Scan(&a.ID, &a.JobID, &a.StudentID, &status, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Assignment{}, job.ErrAssignmentNotFound
		}
		return job.Assignment{}, err
	}
	a.Status = job.AssignmentStatus(status)
	return a, nil
}

func scanAssignments(rows database.Rows) ([]job.Assignment, error) {
	out := make([]job.Assignment, 0)
	for rows.Next() {
		var a job.Assignment
		var status string
		if err := rows.Scan(&a.ID, &a.JobID, &a.StudentID, &status, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Status = job.AssignmentStatus(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
