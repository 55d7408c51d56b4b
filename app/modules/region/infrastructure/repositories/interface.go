package regiondb

import (
	"context"

	"github.com/uptrace/bun"

	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
)

// Repository defines the contract for region persistence.
type Repository interface {
	// ListRegions returns every region ordered by id.
	ListRegions(ctx context.Context, db bun.IDB) ([]regiondomain.Region, error)

	// ListRegionsWithPlayerCount returns every region with the count of players
	// whose region is exactly that region. Counts are not propagated.
	ListRegionsWithPlayerCount(ctx context.Context, db bun.IDB) ([]regiondomain.RegionWithPlayerCount, error)

	// InsertRegions bulk inserts regions; existing ids are overwritten.
	InsertRegions(ctx context.Context, db bun.IDB, regions []regiondomain.Region) error
}
