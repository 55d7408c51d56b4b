package standardservice

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	standarddomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/domain"
	standarddb "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/refcache"
)

const serviceName = "StandardService"

// StandardService implements the Service interface.
type StandardService struct {
	repo    standarddb.Repository
	logger  *slog.Logger
	metrics observability.OperationRecorder
	tracer  trace.Tracer
	cache   *refcache.Cache[struct{}, standarddomain.StandardLevel]
}

// NewStandardService creates a new StandardService. A nil cache gets a
// private one.
func NewStandardService(
	repo standarddb.Repository,
	logger *slog.Logger,
	metrics observability.OperationRecorder,
	tracer trace.Tracer,
	cache *refcache.Cache[struct{}, standarddomain.StandardLevel],
) *StandardService {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = refcache.New[struct{}, standarddomain.StandardLevel]("standard_levels", nil)
	}
	return &StandardService{repo: repo, logger: logger, metrics: metrics, tracer: tracer, cache: cache}
}

func (s *StandardService) telemetry() observability.Telemetry {
	return observability.Telemetry{Service: serviceName, Logger: s.logger, Metrics: s.metrics, Tracer: s.tracer}
}

// Legacy returns the legacy standard levels, loading them on first use.
func (s *StandardService) Legacy(ctx context.Context) ([]standarddomain.StandardLevel, error) {
	return s.cache.GetOrLoad(ctx, struct{}{}, s.loadLegacy)
}

func (s *StandardService) loadLegacy(ctx context.Context, _ struct{}) ([]standarddomain.StandardLevel, error) {
	return observability.WithTelemetry(ctx, s.telemetry(), "LoadLegacy", "legacy", func(ctx context.Context) ([]standarddomain.StandardLevel, error) {
		levels, err := s.repo.ListLegacy(ctx, nil)
		if err != nil {
			return nil, apierror.DataAccess("Couldn't get rows from database", err)
		}
		return levels, nil
	})
}

// Invalidate drops the cached levels.
func (s *StandardService) Invalidate() {
	s.cache.InvalidateAll()
}

var _ Service = (*StandardService)(nil)
