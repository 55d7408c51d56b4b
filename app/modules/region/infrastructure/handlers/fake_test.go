package regionhandlers

import (
	"context"

	regionservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/application"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	IndexFunc           func(ctx context.Context) (*regiondomain.Index, error)
	AncestorsFunc       func(ctx context.Context, id int32) ([]int32, error)
	DescendantsFunc     func(ctx context.Context, id int32) ([]int32, error)
	TypePartitionFunc   func(ctx context.Context) (map[regiondomain.RegionType][]int32, error)
	TreeFunc            func(ctx context.Context) (regiondomain.ChildrenTree, error)
	WithPlayerCountFunc func(ctx context.Context) ([]regiondomain.RegionWithPlayerCount, error)
	invalidated         int
}

func (f *FakeService) Index(ctx context.Context) (*regiondomain.Index, error) {
	if f.IndexFunc != nil {
		return f.IndexFunc(ctx)
	}
	return regiondomain.Build(nil)
}

func (f *FakeService) Ancestors(ctx context.Context, id int32) ([]int32, error) {
	if f.AncestorsFunc != nil {
		return f.AncestorsFunc(ctx, id)
	}
	return []int32{}, nil
}

func (f *FakeService) Descendants(ctx context.Context, id int32) ([]int32, error) {
	if f.DescendantsFunc != nil {
		return f.DescendantsFunc(ctx, id)
	}
	return []int32{}, nil
}

func (f *FakeService) TypePartition(ctx context.Context) (map[regiondomain.RegionType][]int32, error) {
	if f.TypePartitionFunc != nil {
		return f.TypePartitionFunc(ctx)
	}
	return regiondomain.TypePartition(nil)
}

func (f *FakeService) Tree(ctx context.Context) (regiondomain.ChildrenTree, error) {
	if f.TreeFunc != nil {
		return f.TreeFunc(ctx)
	}
	return regiondomain.ChildrenTree{}, nil
}

func (f *FakeService) WithPlayerCount(ctx context.Context) ([]regiondomain.RegionWithPlayerCount, error) {
	if f.WithPlayerCountFunc != nil {
		return f.WithPlayerCountFunc(ctx)
	}
	return nil, nil
}

func (f *FakeService) Invalidate() {
	f.invalidated++
}

var _ regionservice.Service = (*FakeService)(nil)
