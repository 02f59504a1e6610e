package seeder

import (
	"context"
	"fmt"

	"credtrack/internal/database"
)

type SchoolsSeeder struct{}

func (SchoolsSeeder) Name() string { return "schools" }

func (SchoolsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "schools", "id", "name", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "majors", "id", "school_id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		School string
		Majors []string
	}{
		{School: "Politeknik Negeri Jakarta", Majors: []string{"Informatics Engineering", "Multimedia", "Accounting"}},
		{School: "SMK Telkom Bandung", Majors: []string{"Software Engineering", "Computer Networking"}},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO schools (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
			it.School,
		)
		if err != nil {
			return err
		}

		for _, major := range it.Majors {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO majors (id, school_id, name)
				 SELECT gen_random_uuid(), s.id, $2 FROM schools s WHERE s.name = $1
				 ON CONFLICT (school_id, name) DO NOTHING`,
				it.School,
				major,
			)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
