package rankingservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
)

const serviceName = "RankingService"

// snapshotTxOptions gives every query of one computation the same view of the
// scores table.
var snapshotTxOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// RankingService implements the Service interface.
type RankingService struct {
	repo    rankingdb.Repository
	regions RegionIndexer
	logger  *slog.Logger
	metrics observability.OperationRecorder
	tracer  trace.Tracer
	db      *bun.DB
}

// NewRankingService creates a new RankingService.
func NewRankingService(
	repo rankingdb.Repository,
	regions RegionIndexer,
	logger *slog.Logger,
	metrics observability.OperationRecorder,
	tracer trace.Tracer,
	db *bun.DB,
) *RankingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingService{
		repo:    repo,
		regions: regions,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

func (s *RankingService) telemetry() observability.Telemetry {
	return observability.Telemetry{Service: serviceName, Logger: s.logger, Metrics: s.metrics, Tracer: s.tracer}
}

// Rankings ranks the players of params.RegionID and its descendants by rt.
func (s *RankingService) Rankings(ctx context.Context, rt rankingdomain.RankingType, params Params) ([]rankingdomain.RankingEntry, error) {
	identifier := fmt.Sprintf("%s/%s/reg=%d", rt, params.Category, params.RegionID)
	return observability.WithTelemetry(ctx, s.telemetry(), "Rankings", identifier, func(ctx context.Context) ([]rankingdomain.RankingEntry, error) {
		idx, err := s.regions.Index(ctx)
		if err != nil {
			return nil, err
		}
		scope, err := idx.Scope(params.RegionID)
		if err != nil {
			if errors.Is(err, regiondomain.ErrNotFound) {
				return nil, apierror.NotFound("Region not found", err)
			}
			return nil, apierror.Integrity("Region data failed an integrity check", err)
		}

		// only prwr needs records beyond the scoped field
		withRecords := rt == rankingdomain.PersonalRecordWorldRecord && scope != nil
		snap, err := s.loadSnapshot(ctx, params, scope, withRecords)
		if err != nil {
			return nil, err
		}

		return rankingdomain.Compute(rt, snap, params.Lap), nil
	})
}

// CountryRankings groups the unscoped average finish ranking by the ancestor
// of params.RegionType.
func (s *RankingService) CountryRankings(ctx context.Context, params Params) ([]rankingdomain.CountryRankingEntry, error) {
	identifier := fmt.Sprintf("%s/%s", params.RegionType, params.Category)
	return observability.WithTelemetry(ctx, s.telemetry(), "CountryRankings", identifier, func(ctx context.Context) ([]rankingdomain.CountryRankingEntry, error) {
		idx, err := s.regions.Index(ctx)
		if err != nil {
			return nil, err
		}

		snap, err := s.loadSnapshot(ctx, params, nil, false)
		if err != nil {
			return nil, err
		}

		group := func(regionID int32) (int32, bool) {
			return idx.AncestorOfType(regionID, params.RegionType)
		}
		return rankingdomain.ComputeCountry(snap, params.Lap, group, params.Limit), nil
	})
}

// loadSnapshot reads tracks, personal bests, optional records and player
// names inside one read-only repeatable-read transaction.
func (s *RankingService) loadSnapshot(ctx context.Context, params Params, scope []int32, withRecords bool) (rankingdomain.Snapshot, error) {
	filter := rankingdb.ScoreFilter{
		Category:  params.Category,
		Lap:       params.Lap,
		AsOf:      params.AsOf,
		RegionIDs: scope,
	}

	var snap rankingdomain.Snapshot
	err := s.runInReadTx(ctx, func(ctx context.Context, db bun.IDB) error {
		var err error
		if snap.TrackIDs, err = s.repo.ListTrackIDs(ctx, db); err != nil {
			return err
		}
		if snap.Field, err = s.repo.PersonalBests(ctx, db, filter); err != nil {
			return err
		}
		if withRecords {
			if snap.Records, err = s.repo.Records(ctx, db, filter); err != nil {
				return err
			}
		}
		snap.Players, err = s.repo.PlayersByID(ctx, db, playerIDs(snap.Field))
		return err
	})
	if err != nil {
		return rankingdomain.Snapshot{}, apierror.DataAccess("Couldn't get rows from database", err)
	}
	return snap, nil
}

func (s *RankingService) runInReadTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, snapshotTxOptions, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

func playerIDs(field []rankingdomain.PersonalBest) []int32 {
	seen := make(map[int32]struct{})
	ids := make([]int32, 0)
	for _, pb := range field {
		if _, ok := seen[pb.PlayerID]; ok {
			continue
		}
		seen[pb.PlayerID] = struct{}{}
		ids = append(ids, pb.PlayerID)
	}
	return ids
}

var _ Service = (*RankingService)(nil)
