package standard

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	standardservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/application"
	standarddomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/domain"
	standardhandlers "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/handlers"
	standarddb "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/refcache"
)

// Module represents the standard levels module.
type Module struct {
	service  *standardservice.StandardService
	handlers *standardhandlers.StandardHandlers
	logger   *slog.Logger
}

// NewModule creates the module and mounts /standard_levels when httpRouter is
// non-nil.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	cacheMetrics *refcache.Metrics,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing standard levels module")

	repo := standarddb.NewRepository(db)
	cache := refcache.New[struct{}, standarddomain.StandardLevel]("standard_levels", cacheMetrics)
	service := standardservice.NewStandardService(repo, logger, obs.Registry.Operations, obs.Registry.Tracer, cache)
	handlers := standardhandlers.NewStandardHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Mount("/standard_levels", handlers.Routes())
	}

	return &Module{service: service, handlers: handlers, logger: logger}, nil
}

// GetService returns the standard level service.
func (m *Module) GetService() standardservice.Service {
	return m.service
}
