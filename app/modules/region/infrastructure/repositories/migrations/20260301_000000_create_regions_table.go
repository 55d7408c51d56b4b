package regionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating regions table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS regions (
					id INTEGER PRIMARY KEY,
					region_type TEXT NOT NULL CHECK (region_type IN (
						'world', 'continent', 'country', 'country_group',
						'subnational', 'subnational_group'
					)),
					parent_id INTEGER REFERENCES regions(id) DEFERRABLE INITIALLY DEFERRED
				);
				CREATE INDEX IF NOT EXISTS idx_regions_parent_id ON regions(parent_id);
			`); err != nil {
				return fmt.Errorf("failed to create regions table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping regions table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS regions;`); err != nil {
				return fmt.Errorf("failed to drop regions table: %w", err)
			}
			return nil
		})
	})
}
