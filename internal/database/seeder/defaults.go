package seeder

import "credtrack/internal/config"

func Defaults(cfg config.SeedConfig) []Seeder {
	return []Seeder{
		SoftSkillsSeeder{},
		SchoolsSeeder{},
		AdminSeeder{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
	}
}
