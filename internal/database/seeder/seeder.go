package seeder

import (
	"context"

	"credtrack/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
