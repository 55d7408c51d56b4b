package rankingservice

import (
	"context"

	"github.com/uptrace/bun"

	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
)

// ------------------------
// Fake Ranking Repo
// ------------------------

type FakeRankingRepo struct {
	trace   []string
	filters []rankingdb.ScoreFilter

	ListTrackIDsFunc  func(ctx context.Context, db bun.IDB) ([]int32, error)
	PersonalBestsFunc func(ctx context.Context, db bun.IDB, filter rankingdb.ScoreFilter) ([]rankingdomain.PersonalBest, error)
	RecordsFunc       func(ctx context.Context, db bun.IDB, filter rankingdb.ScoreFilter) (map[rankingdomain.Event]int32, error)
	PlayersByIDFunc   func(ctx context.Context, db bun.IDB, ids []int32) (map[int32]rankingdomain.Player, error)
}

func NewFakeRankingRepo() *FakeRankingRepo {
	return &FakeRankingRepo{
		trace: []string{},
	}
}

func (f *FakeRankingRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRankingRepo) ListTrackIDs(ctx context.Context, db bun.IDB) ([]int32, error) {
	f.record("ListTrackIDs")
	if f.ListTrackIDsFunc != nil {
		return f.ListTrackIDsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRankingRepo) PersonalBests(ctx context.Context, db bun.IDB, filter rankingdb.ScoreFilter) ([]rankingdomain.PersonalBest, error) {
	f.record("PersonalBests")
	f.filters = append(f.filters, filter)
	if f.PersonalBestsFunc != nil {
		return f.PersonalBestsFunc(ctx, db, filter)
	}
	return nil, nil
}

func (f *FakeRankingRepo) Records(ctx context.Context, db bun.IDB, filter rankingdb.ScoreFilter) (map[rankingdomain.Event]int32, error) {
	f.record("Records")
	if f.RecordsFunc != nil {
		return f.RecordsFunc(ctx, db, filter)
	}
	return nil, nil
}

func (f *FakeRankingRepo) PlayersByID(ctx context.Context, db bun.IDB, ids []int32) (map[int32]rankingdomain.Player, error) {
	f.record("PlayersByID")
	if f.PlayersByIDFunc != nil {
		return f.PlayersByIDFunc(ctx, db, ids)
	}
	return nil, nil
}

func (f *FakeRankingRepo) InsertPlayers(ctx context.Context, db bun.IDB, players []rankingdb.Player) error {
	f.record("InsertPlayers")
	return nil
}

func (f *FakeRankingRepo) InsertTracks(ctx context.Context, db bun.IDB, tracks []rankingdb.Track) error {
	f.record("InsertTracks")
	return nil
}

func (f *FakeRankingRepo) InsertScores(ctx context.Context, db bun.IDB, scores []rankingdb.Score) error {
	f.record("InsertScores")
	return nil
}

// --- Accessors for assertions ---

func (f *FakeRankingRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRankingRepo) Filters() []rankingdb.ScoreFilter {
	return f.filters
}

var _ rankingdb.Repository = (*FakeRankingRepo)(nil)

// ------------------------
// Fake Region Indexer
// ------------------------

type FakeRegionIndexer struct {
	IndexFunc func(ctx context.Context) (*regiondomain.Index, error)
}

func (f *FakeRegionIndexer) Index(ctx context.Context) (*regiondomain.Index, error) {
	if f.IndexFunc != nil {
		return f.IndexFunc(ctx)
	}
	return regiondomain.Build(nil)
}

var _ RegionIndexer = (*FakeRegionIndexer)(nil)
