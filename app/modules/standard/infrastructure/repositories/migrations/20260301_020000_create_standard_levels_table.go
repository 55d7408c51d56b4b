package standardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating standard_levels table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS standard_levels (
					id INTEGER PRIMARY KEY,
					code TEXT NOT NULL,
					value INTEGER NOT NULL,
					is_legacy BOOLEAN NOT NULL
				);
				CREATE INDEX IF NOT EXISTS idx_standard_levels_legacy ON standard_levels(is_legacy);
			`); err != nil {
				return fmt.Errorf("failed to create standard_levels table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping standard_levels table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS standard_levels;`); err != nil {
				return fmt.Errorf("failed to drop standard_levels table: %w", err)
			}
			return nil
		})
	})
}
