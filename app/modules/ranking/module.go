package ranking

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	rankingservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/application"
	rankinghandlers "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/handlers"
	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/clock"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
)

// Module represents the ranking module.
type Module struct {
	service  *rankingservice.RankingService
	handlers *rankinghandlers.RankingHandlers
	logger   *slog.Logger
}

// NewModule creates the ranking module and mounts its routes under /rankings
// when httpRouter is non-nil.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	regions rankingservice.RegionIndexer,
	c clock.Clock,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing ranking module")

	repo := rankingdb.NewRepository(db)
	service := rankingservice.NewRankingService(repo, regions, logger, obs.Registry.Operations, obs.Registry.Tracer, db)
	handlers := rankinghandlers.NewRankingHandlers(service, rankinghandlers.NewParamParser(c, logger), logger)

	if httpRouter != nil {
		httpRouter.Mount("/rankings", handlers.Routes())
	}

	return &Module{service: service, handlers: handlers, logger: logger}, nil
}

// GetService returns the ranking service for use by other components.
func (m *Module) GetService() rankingservice.Service {
	return m.service
}
