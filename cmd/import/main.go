package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	authdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories"
	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	regiondb "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/repositories"
	standarddb "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/config"
	"github.com/Black-And-White-Club/timetrial-standings/db/bundb"
	"github.com/Black-And-White-Club/timetrial-standings/db/fixtures"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	dir := flag.String("dir", "./db/fixtures/data", "Directory holding the fixture JSON files")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := observability.NewLogger(cfg.Observability.Environment, cfg.Observability.LogLevel)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbService.Close()

	db := dbService.GetDB()
	loader := &fixtures.Loader{
		Regions:   regiondb.NewRepository(db),
		Rankings:  rankingdb.NewRepository(db),
		Standards: standarddb.NewRepository(db),
		Users:     authdb.NewRepository(db),
		Logger:    logger,
	}

	summary, err := loader.Load(ctx, db, os.DirFS(*dir))
	if err != nil {
		logger.ErrorContext(ctx, "Fixture import failed, nothing was written", "error", err)
		dbService.Close()
		os.Exit(1)
	}

	for _, file := range fixtures.Files() {
		if n, ok := summary[file]; ok {
			logger.InfoContext(ctx, "Imported fixture", "file", file, "rows", n)
		}
	}
}
