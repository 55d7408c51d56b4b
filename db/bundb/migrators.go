package bundb

import (
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	authmigrations "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories/migrations"
	rankingmigrations "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories/migrations"
	regionmigrations "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/repositories/migrations"
	standardmigrations "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/repositories/migrations"
)

// ModuleMigrator pairs a module name with its migrator.
type ModuleMigrator struct {
	Module   string
	Migrator *migrate.Migrator
}

// Migrators returns one migrator per module, each tracking its own history
// table. The order satisfies foreign keys: players reference regions.
// Roll back in reverse.
func Migrators(db *bun.DB) []ModuleMigrator {
	modules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"region", regionmigrations.Migrations},
		{"ranking", rankingmigrations.Migrations},
		{"standard", standardmigrations.Migrations},
		{"auth", authmigrations.Migrations},
	}

	out := make([]ModuleMigrator, len(modules))
	for i, m := range modules {
		out[i] = ModuleMigrator{
			Module: m.name,
			Migrator: migrate.NewMigrator(db, m.migrations,
				migrate.WithTableName("bun_migrations_"+m.name),
				migrate.WithLocksTableName("bun_migration_locks_"+m.name),
			),
		}
	}
	return out
}
