package rankingservice

import (
	"context"
	"time"

	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
)

// Params are the resolved ranking query parameters.
type Params struct {
	Category rankingdomain.Category
	// Lap is nil for both modes.
	Lap *bool
	// AsOf is the civil date rankings are computed for.
	AsOf       time.Time
	RegionID   int32
	RegionType regiondomain.RegionType
	// Limit caps country rankings; <= 0 is unlimited.
	Limit int
}

// Service computes player and country rankings.
type Service interface {
	Rankings(ctx context.Context, rt rankingdomain.RankingType, params Params) ([]rankingdomain.RankingEntry, error)
	CountryRankings(ctx context.Context, params Params) ([]rankingdomain.CountryRankingEntry, error)
}

// RegionIndexer is the slice of the region service rankings depend on.
type RegionIndexer interface {
	Index(ctx context.Context) (*regiondomain.Index, error)
}
