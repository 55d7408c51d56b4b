//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Black-And-White-Club/timetrial-standings/config"
	"github.com/Black-And-White-Club/timetrial-standings/db/bundb"
	"github.com/Black-And-White-Club/timetrial-standings/integration_tests/containers"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
)

// TestEnvironment holds the resources shared by an integration test package.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	DB            *bun.DB
	DBService     *bundb.DBService
	Config        *config.Config
	Observability *observability.Observability
}

// NewTestEnvironment starts Postgres, opens a bun handle over the pgx stdlib
// driver and applies every module migration.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}

	db := bundb.NewDB(sqlDB)
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		PgContainer:   pgContainer,
		DB:            db,
		DBService:     bundb.NewDBService(db),
		Config: &config.Config{
			Postgres: config.PostgresConfig{DSN: pgConnStr},
			HTTP:     config.HTTPConfig{Addr: ":0", ShutdownTimeout: 5 * time.Second},
			JWT:      config.JWTConfig{Secret: "integration-secret", DefaultTTL: time.Hour},
			Auth:     config.AuthConfig{RateLimit: 100, RateBurst: 100},
		},
		Observability: observability.NewNop(),
	}, nil
}

// Reset truncates every application table so each test starts empty.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	if err := TruncateTables(env.Ctx, env.DB, AppTables...); err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
}

// Cleanup closes the database and terminates the container.
func (env *TestEnvironment) Cleanup() {
	if env.DB != nil {
		if err := env.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating postgres container: %v", err)
		}
	}
	env.CancelContext()
}
