package authmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users and ip_request_throttles tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS users (
					id SERIAL PRIMARY KEY,
					username TEXT NOT NULL UNIQUE,
					password_hash TEXT NOT NULL,
					is_admin BOOLEAN NOT NULL DEFAULT FALSE
				);
			`); err != nil {
				return fmt.Errorf("failed to create users table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS ip_request_throttles (
					id BIGSERIAL PRIMARY KEY,
					ip INET NOT NULL,
					user_id INTEGER NOT NULL,
					timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_ip_request_throttles_user_ts ON ip_request_throttles(user_id, timestamp);
				CREATE INDEX IF NOT EXISTS idx_ip_request_throttles_ip_ts ON ip_request_throttles(ip, timestamp);
			`); err != nil {
				return fmt.Errorf("failed to create ip_request_throttles table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping users and ip_request_throttles tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS ip_request_throttles;
				DROP TABLE IF EXISTS users;
			`); err != nil {
				return fmt.Errorf("failed to drop auth tables: %w", err)
			}
			return nil
		})
	})
}
