package region

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	regionservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/application"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	regionhandlers "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/handlers"
	regiondb "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/refcache"
)

// Module represents the region module.
type Module struct {
	service  *regionservice.RegionService
	handlers *regionhandlers.RegionHandlers
	logger   *slog.Logger
}

// NewModule creates the region module and mounts its routes under /regions
// when httpRouter is non-nil.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	cacheMetrics *refcache.Metrics,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing region module")

	repo := regiondb.NewRepository(db)
	cache := refcache.New[struct{}, *regiondomain.Index]("regions", cacheMetrics)
	service := regionservice.NewRegionService(repo, logger, obs.Registry.Operations, obs.Registry.Tracer, db, cache)
	handlers := regionhandlers.NewRegionHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Mount("/regions", handlers.Routes())
	}

	return &Module{service: service, handlers: handlers, logger: logger}, nil
}

// Warm loads the region index. The ranking engine cannot scope without it, so
// callers treat a failure here as fatal.
func (m *Module) Warm(ctx context.Context) error {
	idx, err := m.service.Index(ctx)
	if err != nil {
		return fmt.Errorf("failed to load region index: %w", err)
	}
	m.logger.InfoContext(ctx, "Region module ready", "regions", idx.Len())
	return nil
}

// GetService returns the region service for use by other modules.
func (m *Module) GetService() regionservice.Service {
	return m.service
}
