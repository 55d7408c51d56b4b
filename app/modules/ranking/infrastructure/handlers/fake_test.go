package rankinghandlers

import (
	"context"

	rankingservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/application"
	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	RankingsFunc        func(ctx context.Context, rt rankingdomain.RankingType, params rankingservice.Params) ([]rankingdomain.RankingEntry, error)
	CountryRankingsFunc func(ctx context.Context, params rankingservice.Params) ([]rankingdomain.CountryRankingEntry, error)
}

func (f *FakeService) Rankings(ctx context.Context, rt rankingdomain.RankingType, params rankingservice.Params) ([]rankingdomain.RankingEntry, error) {
	if f.RankingsFunc != nil {
		return f.RankingsFunc(ctx, rt, params)
	}
	return []rankingdomain.RankingEntry{}, nil
}

func (f *FakeService) CountryRankings(ctx context.Context, params rankingservice.Params) ([]rankingdomain.CountryRankingEntry, error) {
	if f.CountryRankingsFunc != nil {
		return f.CountryRankingsFunc(ctx, params)
	}
	return []rankingdomain.CountryRankingEntry{}, nil
}

var _ rankingservice.Service = (*FakeService)(nil)
