package repository

import (
	"context"
	"encoding/json"
	"errors"

	"credtrack/internal/database"
	"credtrack/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const skillColumns = `id, owner_id, course_id, school_id, title, description, level, attachment_cid,
	soft_skill_ids, verified, reviewed_by, reviewed_at, hard_scores, soft_scores, score, created_at`

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) Create(ctx context.Context, in skill.CreateInput) (skill.Skill, error) {
	id := uuid.New()
	var out skill.Skill
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		// Lock the course row so concurrent first submissions for the
		// same course serialize on the counter.
		var count int
		err := tx.QueryRow(ctx, `SELECT student_count FROM courses WHERE id = $1 FOR UPDATE`, in.CourseID).Scan(&count)
		if err != nil {
			return err
		}

		var already bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM skills WHERE owner_id = $1 AND course_id = $2)`,
			in.OwnerID, in.CourseID,
		).Scan(&already)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO skills (id, owner_id, course_id, school_id, title, description, level, attachment_cid, soft_skill_ids, verified)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, in.OwnerID, in.CourseID, in.SchoolID, in.Title, in.Description,
			string(in.Level), in.AttachmentCID, in.SoftSkillIDs, string(skill.VerificationPending),
		)
		if err != nil {
			return err
		}

		if !already {
			if _, err := tx.Exec(ctx,
				`UPDATE courses SET student_count = student_count + 1 WHERE id = $1`, in.CourseID); err != nil {
				return err
			}
		}

		out, err = scanSkill(tx.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
		return err
	})
	return out, err
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	return scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
}

func (r *PostgresSkillRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]skill.Skill, error) {
	return r.list(ctx, `SELECT `+skillColumns+` FROM skills WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *PostgresSkillRepository) ListPendingBySchool(ctx context.Context, schoolID uuid.UUID) ([]skill.Skill, error) {
	return r.list(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE school_id = $1 AND verified = $2 ORDER BY created_at ASC`,
		schoolID, string(skill.VerificationPending))
}

func (r *PostgresSkillRepository) ListApprovedByOwner(ctx context.Context, ownerID uuid.UUID) ([]skill.Skill, error) {
	return r.list(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE owner_id = $1 AND verified = $2 ORDER BY created_at DESC`,
		ownerID, string(skill.VerificationApproved))
}

func (r *PostgresSkillRepository) ListApprovedBySchool(ctx context.Context, schoolID uuid.UUID) ([]skill.Skill, error) {
	return r.list(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE school_id = $1 AND verified = $2 ORDER BY created_at DESC`,
		schoolID, string(skill.VerificationApproved))
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		var owner uuid.UUID
		err := tx.QueryRow(ctx, `SELECT owner_id FROM skills WHERE id = $1 FOR UPDATE`, id).Scan(&owner)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return skill.ErrNotFound
			}
			return err
		}
		if owner != ownerID {
			return skill.ErrNotOwner
		}
		_, err = tx.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
		return err
	})
}

func (r *PostgresSkillRepository) Review(ctx context.Context, in skill.ReviewInput) (skill.Skill, error) {
	var out skill.Skill
	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		cur, err := scanSkill(tx.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1 FOR UPDATE`, in.SkillID))
		if err != nil {
			return err
		}
		if cur.Verified != skill.VerificationPending {
			out = cur
			return skill.ErrAlreadyReviewed
		}

		hard, soft, err := marshalScores(in.Review.HardScores, in.Review.SoftScores)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE skills
			 SET verified = $2, reviewed_by = $3, reviewed_at = now(), hard_scores = $4, soft_scores = $5, score = $6
			 WHERE id = $1`,
			in.SkillID, string(in.Review.Verdict), in.ReviewerID, hard, soft, in.Score,
		)
		if err != nil {
			return err
		}

		out, err = scanSkill(tx.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, in.SkillID))
		return err
	})
	return out, err
}

func (r *PostgresSkillRepository) list(ctx context.Context, query string, args ...any) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkillRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type skillScanner interface {
	Scan(dest ...any) error
}

func scanSkill(row database.Row) (skill.Skill, error) {
	s, err := scanSkillRow(row)
	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return skill.Skill{}, skill.ErrNotFound
	}
	return s, err
}

func scanSkillRow(row skillScanner) (skill.Skill, error) {
	var s skill.Skill
	var level, verified string
	var hardRaw, softRaw []byte

	err := row.Scan(&s.ID, &s.OwnerID, &s.CourseID, &s.SchoolID, &s.Title, &s.Description,
		&level, &s.AttachmentCID, &s.SoftSkillIDs, &verified, &s.ReviewedBy, &s.ReviewedAt,
		&hardRaw, &softRaw, &s.Score, &s.CreatedAt)
	if err != nil {
		return skill.Skill{}, err
	}

	s.Level = skill.Level(level)
	s.Verified = skill.Verification(verified)

	if len(hardRaw) > 0 {
		if err := json.Unmarshal(hardRaw, &s.HardScores); err != nil {
			return skill.Skill{}, err
		}
	}
	if len(softRaw) > 0 {
		if err := json.Unmarshal(softRaw, &s.SoftScores); err != nil {
			return skill.Skill{}, err
		}
	}
	return s, nil
}

func marshalScores(hard, soft map[string]float64) ([]byte, []byte, error) {
	var hardRaw, softRaw []byte
	var err error
	if len(hard) > 0 {
		if hardRaw, err = json.Marshal(hard); err != nil {
			return nil, nil, err
		}
	}
	if len(soft) > 0 {
		if softRaw, err = json.Marshal(soft); err != nil {
			return nil, nil, err
		}
	}
	return hardRaw, softRaw, nil
}
