//go:build integration

package region_integration_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/app/modules/region"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	regiondb "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/integration_tests/testutils"
)

func seed(t *testing.T, ctx context.Context) {
	t.Helper()
	players := []rankingdb.Player{
		{ID: 1, Name: "Alice", RegionID: 4},
		{ID: 2, Name: "Bob", RegionID: 4},
		{ID: 3, Name: "Carol", RegionID: 3},
		{ID: 4, Name: "Dave", RegionID: 5},
	}
	require.NoError(t, testutils.SeedRankingData(ctx, testEnv.DB, testutils.StandardRegions(), players, nil, nil))
}

func TestRepository_RoundTrip(t *testing.T) {
	testEnv.Reset(t)
	ctx := context.Background()
	seed(t, ctx)

	repo := regiondb.NewRepository(testEnv.DB)
	regions, err := repo.ListRegions(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, testutils.StandardRegions(), regions)

	counts, err := repo.ListRegionsWithPlayerCount(ctx, nil)
	require.NoError(t, err)
	direct := map[int32]int64{}
	for _, c := range counts {
		direct[c.ID] = c.DirectCount
	}
	assert.Equal(t, map[int32]int64{1: 0, 2: 0, 3: 1, 4: 2, 5: 1}, direct)
}

func TestRepository_InsertOverwrites(t *testing.T) {
	testEnv.Reset(t)
	ctx := context.Background()
	seed(t, ctx)

	repo := regiondb.NewRepository(testEnv.DB)
	parent := int32(2)
	require.NoError(t, repo.InsertRegions(ctx, nil, []regiondomain.Region{
		{ID: 4, Type: regiondomain.Country, ParentID: &parent},
	}))

	regions, err := repo.ListRegions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, regions, 5)
	assert.Equal(t, regiondomain.Country, regions[3].Type)
	assert.Equal(t, int32(2), *regions[3].ParentID)
}

func TestService_HierarchyQueries(t *testing.T) {
	testEnv.Reset(t)
	ctx := context.Background()
	seed(t, ctx)

	module, err := region.NewModule(ctx, testEnv.Observability, testEnv.DB, nil, nil)
	require.NoError(t, err)
	require.NoError(t, module.Warm(ctx))
	svc := module.GetService()

	ancestors, err := svc.Ancestors(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4}, ancestors)

	descendants, err := svc.Descendants(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 4, 5}, descendants)

	_, err = svc.Descendants(ctx, 99)
	assert.Error(t, err)

	counts, err := svc.WithPlayerCount(ctx)
	require.NoError(t, err)
	collapsed := map[int32]int64{}
	for _, c := range counts {
		collapsed[c.ID] = c.PlayerCount
	}
	assert.Equal(t, map[int32]int64{1: 4, 2: 4, 3: 3, 4: 2, 5: 1}, collapsed)
}

func TestService_InvalidatePicksUpNewRegions(t *testing.T) {
	testEnv.Reset(t)
	ctx := context.Background()
	seed(t, ctx)

	module, err := region.NewModule(ctx, testEnv.Observability, testEnv.DB, nil, nil)
	require.NoError(t, err)
	svc := module.GetService()

	_, err = svc.Ancestors(ctx, 6)
	require.Error(t, err)

	parent := int32(5)
	require.NoError(t, regiondb.NewRepository(testEnv.DB).InsertRegions(ctx, nil, []regiondomain.Region{
		{ID: 6, Type: regiondomain.Subnational, ParentID: &parent},
	}))

	// still served from the cached index
	_, err = svc.Ancestors(ctx, 6)
	require.Error(t, err)

	svc.Invalidate()
	ancestors, err := svc.Ancestors(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 5, 6}, ancestors)
}
