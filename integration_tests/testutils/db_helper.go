//go:build integration

package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/timetrial-standings/db/bundb"
)

// AppTables lists every application table, dependents first.
var AppTables = []string{"scores", "players", "tracks", "regions", "standard_levels", "ip_request_throttles", "users"}

// RunMigrations initializes and applies each module's migrations in order.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	for _, m := range bundb.Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize %s migrations: %w", m.Module, err)
		}
		group, err := m.Migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", m.Module, err)
		}
		if group.IsZero() {
			log.Printf("No %s migrations to run", m.Module)
		} else {
			log.Printf("Ran %s migrations group #%d", m.Module, group.ID)
		}
	}
	return nil
}

// TruncateTables truncates the specified tables
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf(`"%s"`, table)
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(quoted, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}
