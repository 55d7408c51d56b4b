package regionservice

import (
	"context"

	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
)

// Service answers hierarchy queries from the cached region index.
type Service interface {
	// Index returns the cached region index, loading it on first use.
	Index(ctx context.Context) (*regiondomain.Index, error)

	Ancestors(ctx context.Context, id int32) ([]int32, error)
	Descendants(ctx context.Context, id int32) ([]int32, error)
	TypePartition(ctx context.Context) (map[regiondomain.RegionType][]int32, error)
	Tree(ctx context.Context) (regiondomain.ChildrenTree, error)

	// WithPlayerCount reads fresh counts on every call; they are not cached.
	WithPlayerCount(ctx context.Context) ([]regiondomain.RegionWithPlayerCount, error)

	// Invalidate drops the cached index so the next call reloads it.
	Invalidate()
}
