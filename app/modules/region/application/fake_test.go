package regionservice

import (
	"context"

	"github.com/uptrace/bun"

	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	regiondb "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/repositories"
)

// ------------------------
// Fake Region Repo
// ------------------------

type FakeRegionRepo struct {
	trace []string

	ListRegionsFunc                func(ctx context.Context, db bun.IDB) ([]regiondomain.Region, error)
	ListRegionsWithPlayerCountFunc func(ctx context.Context, db bun.IDB) ([]regiondomain.RegionWithPlayerCount, error)
	InsertRegionsFunc              func(ctx context.Context, db bun.IDB, regions []regiondomain.Region) error
}

func NewFakeRegionRepo() *FakeRegionRepo {
	return &FakeRegionRepo{
		trace: []string{},
	}
}

func (f *FakeRegionRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRegionRepo) ListRegions(ctx context.Context, db bun.IDB) ([]regiondomain.Region, error) {
	f.record("ListRegions")
	if f.ListRegionsFunc != nil {
		return f.ListRegionsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRegionRepo) ListRegionsWithPlayerCount(ctx context.Context, db bun.IDB) ([]regiondomain.RegionWithPlayerCount, error) {
	f.record("ListRegionsWithPlayerCount")
	if f.ListRegionsWithPlayerCountFunc != nil {
		return f.ListRegionsWithPlayerCountFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRegionRepo) InsertRegions(ctx context.Context, db bun.IDB, regions []regiondomain.Region) error {
	f.record("InsertRegions")
	if f.InsertRegionsFunc != nil {
		return f.InsertRegionsFunc(ctx, db, regions)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeRegionRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ regiondb.Repository = (*FakeRegionRepo)(nil)
