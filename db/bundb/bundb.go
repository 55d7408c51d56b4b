// Package bundb opens the shared bun handle and lists the per-module
// migrators in dependency order.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	authdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories"
	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	regiondb "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/repositories"
	standarddb "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/config"
)

// DBService owns the connection pool shared by every module.
type DBService struct {
	db *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// Close closes the connection pool.
func (s *DBService) Close() error {
	return s.db.Close()
}

// NewBunDBService connects to Postgres and registers the module models.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := NewDB(sqldb)
	logger.InfoContext(ctx, "Database connection established")

	return &DBService{db: db}, nil
}

// NewDB wraps sqldb in a bun.DB with the Postgres dialect and every module
// model registered.
func NewDB(sqldb *sql.DB) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(
		(*regiondb.Region)(nil),
		(*rankingdb.Player)(nil),
		(*rankingdb.Track)(nil),
		(*rankingdb.Score)(nil),
		(*standarddb.StandardLevel)(nil),
		(*authdb.User)(nil),
		(*authdb.LoginAttempt)(nil),
	)
	return db
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}

// NewDBService wraps an already opened handle, such as one built over the pgx
// stdlib driver in tests.
func NewDBService(db *bun.DB) *DBService {
	return &DBService{db: db}
}
