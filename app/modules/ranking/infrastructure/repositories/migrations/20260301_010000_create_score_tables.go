package rankingmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players, tracks and scores tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id INTEGER PRIMARY KEY,
					name TEXT NOT NULL,
					region_id INTEGER NOT NULL REFERENCES regions(id)
				);
				CREATE INDEX IF NOT EXISTS idx_players_region_id ON players(region_id);

				CREATE TABLE IF NOT EXISTS tracks (
					id INTEGER PRIMARY KEY,
					name TEXT NOT NULL
				);
			`); err != nil {
				return fmt.Errorf("failed to create players and tracks tables: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS scores (
					id BIGSERIAL PRIMARY KEY,
					player_id INTEGER NOT NULL REFERENCES players(id),
					track_id INTEGER NOT NULL REFERENCES tracks(id),
					category SMALLINT NOT NULL DEFAULT 0 CHECK (category BETWEEN 0 AND 2),
					is_lap BOOLEAN NOT NULL DEFAULT FALSE,
					value INTEGER NOT NULL CHECK (value > 0),
					date DATE NOT NULL
				);
				CREATE INDEX IF NOT EXISTS idx_scores_track_lap_category
					ON scores(track_id, is_lap, category, date);
				CREATE INDEX IF NOT EXISTS idx_scores_player_id ON scores(player_id);
			`); err != nil {
				return fmt.Errorf("failed to create scores table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scores, tracks and players tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS scores;
				DROP TABLE IF EXISTS tracks;
				DROP TABLE IF EXISTS players;
			`); err != nil {
				return fmt.Errorf("failed to drop score tables: %w", err)
			}
			return nil
		})
	})
}
