package regionservice

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	regiondb "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/refcache"
)

const serviceName = "RegionService"

// RegionService implements the Service interface.
type RegionService struct {
	repo    regiondb.Repository
	logger  *slog.Logger
	metrics observability.OperationRecorder
	tracer  trace.Tracer
	db      bun.IDB
	cache   *refcache.Cache[struct{}, *regiondomain.Index]
}

// NewRegionService creates a new RegionService. cache may be shared with
// other holders that need to invalidate it.
func NewRegionService(
	repo regiondb.Repository,
	logger *slog.Logger,
	metrics observability.OperationRecorder,
	tracer trace.Tracer,
	db bun.IDB,
	cache *refcache.Cache[struct{}, *regiondomain.Index],
) *RegionService {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = refcache.New[struct{}, *regiondomain.Index]("regions", nil)
	}
	return &RegionService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
		cache:   cache,
	}
}

func (s *RegionService) telemetry() observability.Telemetry {
	return observability.Telemetry{Service: serviceName, Logger: s.logger, Metrics: s.metrics, Tracer: s.tracer}
}

func (s *RegionService) Index(ctx context.Context) (*regiondomain.Index, error) {
	items, err := s.cache.GetOrLoad(ctx, struct{}{}, s.loadIndex)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

func (s *RegionService) loadIndex(ctx context.Context, _ struct{}) ([]*regiondomain.Index, error) {
	return observability.WithTelemetry(ctx, s.telemetry(), "LoadIndex", "all", func(ctx context.Context) ([]*regiondomain.Index, error) {
		regions, err := s.repo.ListRegions(ctx, s.db)
		if err != nil {
			return nil, classify(err)
		}

		idx, err := regiondomain.Build(regions)
		if err != nil {
			return nil, classify(err)
		}

		s.logger.InfoContext(ctx, "Region index loaded", "regions", idx.Len())
		return []*regiondomain.Index{idx}, nil
	})
}

func (s *RegionService) Ancestors(ctx context.Context, id int32) ([]int32, error) {
	return observability.WithTelemetry(ctx, s.telemetry(), "Ancestors", strconv.Itoa(int(id)), func(ctx context.Context) ([]int32, error) {
		idx, err := s.Index(ctx)
		if err != nil {
			return nil, err
		}
		ids, err := idx.Ancestors(id)
		if err != nil {
			return nil, classify(err)
		}
		return ids, nil
	})
}

func (s *RegionService) Descendants(ctx context.Context, id int32) ([]int32, error) {
	return observability.WithTelemetry(ctx, s.telemetry(), "Descendants", strconv.Itoa(int(id)), func(ctx context.Context) ([]int32, error) {
		idx, err := s.Index(ctx)
		if err != nil {
			return nil, err
		}
		ids, err := idx.Descendants(id)
		if err != nil {
			return nil, classify(err)
		}
		return ids, nil
	})
}

func (s *RegionService) TypePartition(ctx context.Context) (map[regiondomain.RegionType][]int32, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	partition, err := regiondomain.TypePartition(idx.Regions())
	if err != nil {
		return nil, classify(err)
	}
	return partition, nil
}

func (s *RegionService) Tree(ctx context.Context) (regiondomain.ChildrenTree, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Tree(), nil
}

func (s *RegionService) WithPlayerCount(ctx context.Context) ([]regiondomain.RegionWithPlayerCount, error) {
	return observability.WithTelemetry(ctx, s.telemetry(), "WithPlayerCount", "all", func(ctx context.Context) ([]regiondomain.RegionWithPlayerCount, error) {
		rows, err := s.repo.ListRegionsWithPlayerCount(ctx, s.db)
		if err != nil {
			return nil, classify(err)
		}
		collapsed, err := regiondomain.CollapsePlayerCounts(rows)
		if err != nil {
			return nil, classify(err)
		}
		return collapsed, nil
	})
}

func (s *RegionService) Invalidate() {
	s.cache.InvalidateAll()
	s.logger.Info("Region index invalidated")
}

// classify attaches the boundary error kind to a repository or domain error.
func classify(err error) error {
	switch {
	case errors.Is(err, regiondomain.ErrNotFound):
		return apierror.NotFound("Region not found", err)
	case errors.Is(err, regiondomain.ErrIntegrity):
		return apierror.Integrity("Region data failed an integrity check", err)
	case errors.Is(err, regiondb.ErrDecoding):
		return apierror.Wrap(apierror.ErrDecoding, "Couldn't decode region rows", err)
	default:
		return apierror.DataAccess("Couldn't get rows from database", err)
	}
}

var _ Service = (*RegionService)(nil)
