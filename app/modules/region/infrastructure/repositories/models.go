package regiondb

import (
	"fmt"

	"github.com/uptrace/bun"

	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
)

// Region is the regions table row. The type is stored as text.
type Region struct {
	bun.BaseModel `bun:"table:regions,alias:r"`

	ID       int32  `bun:"id,pk"`
	Type     string `bun:"region_type,notnull"`
	ParentID *int32 `bun:"parent_id"`
}

// RegionWithPlayerCount is a region row plus the number of players attached
// directly to it.
type RegionWithPlayerCount struct {
	ID          int32  `bun:"id"`
	Type        string `bun:"region_type"`
	ParentID    *int32 `bun:"parent_id"`
	PlayerCount int64  `bun:"player_count"`
}

func (r *Region) toDomain() (regiondomain.Region, error) {
	t, err := regiondomain.ParseRegionType(r.Type)
	if err != nil {
		return regiondomain.Region{}, fmt.Errorf("%w: region %d: %w", ErrDecoding, r.ID, err)
	}
	return regiondomain.Region{ID: r.ID, Type: t, ParentID: r.ParentID}, nil
}

// FromDomain converts a domain region into its row form.
func FromDomain(r regiondomain.Region) Region {
	return Region{ID: r.ID, Type: r.Type.String(), ParentID: r.ParentID}
}
