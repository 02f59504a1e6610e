package seeder

import (
	"context"
	"fmt"

	"credtrack/internal/database"
)

type SoftSkillsSeeder struct{}

func (SoftSkillsSeeder) Name() string { return "soft_skills" }

func (SoftSkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "soft_skills", "id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	names := []string{
		"Communication",
		"Teamwork",
		"Problem Solving",
		"Time Management",
		"Adaptability",
		"Leadership",
		"Critical Thinking",
		"Creativity",
	}

	for _, name := range names {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO soft_skills (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
			name,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
