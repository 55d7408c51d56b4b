package rankingdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func pb(player, track int32, lap bool, v int32) PersonalBest {
	return PersonalBest{PlayerID: player, Event: Event{TrackID: track, IsLap: lap}, Value: v}
}

// twoTrackSnapshot:
//
//	track 1 course: p10=100 p30=100 p20=110
//	track 2 course: p20=190 p10=200 (p30 has no time)
func twoTrackSnapshot() Snapshot {
	return Snapshot{
		TrackIDs: []int32{1, 2},
		Field: []PersonalBest{
			pb(10, 1, false, 100),
			pb(20, 1, false, 110),
			pb(30, 1, false, 100),
			pb(10, 2, false, 200),
			pb(20, 2, false, 190),
			// lap times are outside a course-only ranking
			pb(30, 2, true, 10),
		},
		Players: map[int32]Player{
			10: {ID: 10, Name: "alice", RegionID: 4},
			20: {ID: 20, Name: "bob", RegionID: 5},
			30: {ID: 30, Name: "carol", RegionID: 7},
		},
	}
}

type row struct {
	rank   int
	player int32
	value  float64
}

func rows(entries []RankingEntry) []row {
	out := make([]row, len(entries))
	for i, e := range entries {
		out[i] = row{e.Rank, e.PlayerID, e.Value}
	}
	return out
}

func assertRows(t *testing.T, want, got []row) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].rank, got[i].rank, "rank at %d", i)
		assert.Equal(t, want[i].player, got[i].player, "player at %d", i)
		assert.InDelta(t, want[i].value, got[i].value, 1e-9, "value at %d", i)
	}
}

func TestCompute(t *testing.T) {
	course := boolPtr(false)

	tests := []struct {
		name string
		rt   RankingType
		snap func() Snapshot
		want []row
	}{
		{
			name: "total time excludes incomplete players and ties share rank",
			rt:   TotalTime,
			snap: twoTrackSnapshot,
			want: []row{{1, 10, 300}, {1, 20, 300}},
		},
		{
			name: "average finish ascends",
			rt:   AverageFinish,
			snap: twoTrackSnapshot,
			want: []row{{1, 30, 1}, {2, 10, 1.5}, {3, 20, 2}},
		},
		{
			name: "average rank rating descends",
			rt:   AverageRankRating,
			snap: twoTrackSnapshot,
			want: []row{{1, 30, 1}, {2, 10, 0.75}, {3, 20, 2.0 / 3.0}},
		},
		{
			name: "prwr against field records",
			rt:   PersonalRecordWorldRecord,
			snap: twoTrackSnapshot,
			want: []row{{1, 30, 1}, {2, 10, 0.975}, {3, 20, (100.0/110.0 + 1) / 2}},
		},
		{
			name: "prwr against a faster global record",
			rt:   PersonalRecordWorldRecord,
			snap: func() Snapshot {
				s := twoTrackSnapshot()
				s.Records = map[Event]int32{{TrackID: 1}: 90, {TrackID: 2}: 190}
				return s
			},
			want: []row{{1, 10, 0.925}, {2, 20, (90.0/110.0 + 1) / 2}, {3, 30, 0.9}},
		},
		{
			name: "tally shares points on tied placements",
			rt:   TallyPoints,
			snap: twoTrackSnapshot,
			want: []row{{1, 10, 43}, {2, 20, 40}, {3, 30, 25}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.rt, tt.snap(), course)
			assertRows(t, tt.want, rows(got))
		})
	}
}

func TestCompute_EntryMetadata(t *testing.T) {
	got := Compute(AverageFinish, twoTrackSnapshot(), boolPtr(false))
	require.Len(t, got, 3)

	assert.Equal(t, "carol", got[0].PlayerName)
	assert.Equal(t, int32(7), got[0].RegionID)
	assert.Equal(t, 1, got[0].Events)
	assert.Equal(t, 2, got[1].Events)
}

func TestCompute_LapFilterNilCoversBothModes(t *testing.T) {
	snap := Snapshot{
		TrackIDs: []int32{1},
		Field: []PersonalBest{
			pb(1, 1, false, 100),
			pb(1, 1, true, 30),
			pb(2, 1, false, 90),
		},
	}

	total := Compute(TotalTime, snap, nil)
	assertRows(t, []row{{1, 1, 130}}, rows(total))

	af := Compute(AverageFinish, snap, nil)
	assertRows(t, []row{{1, 2, 1}, {2, 1, 1.5}}, rows(af))
}

func TestCompute_DuplicateAndInvalidTimes(t *testing.T) {
	snap := Snapshot{
		TrackIDs: []int32{1},
		Field: []PersonalBest{
			pb(1, 1, false, 120),
			pb(1, 1, false, 100),
			pb(2, 1, false, 0),
			pb(3, 1, false, 110),
			// unknown track is ignored
			pb(3, 9, false, 1),
		},
	}

	got := Compute(TotalTime, snap, boolPtr(false))
	assertRows(t, []row{{1, 1, 100}, {2, 3, 110}}, rows(got))
}

func TestCompute_TallyBeyondTenthScoresZero(t *testing.T) {
	snap := Snapshot{TrackIDs: []int32{1}}
	for i := int32(1); i <= 12; i++ {
		snap.Field = append(snap.Field, pb(i, 1, false, 1000+i))
	}

	got := Compute(TallyPoints, snap, boolPtr(false))
	require.Len(t, got, 12)
	assert.Equal(t, float64(25), got[0].Value)
	assert.Equal(t, float64(1), got[9].Value)
	assert.Equal(t, float64(0), got[10].Value)
	assert.Equal(t, float64(0), got[11].Value)
	assert.Equal(t, 11, got[10].Rank)
	assert.Equal(t, 11, got[11].Rank)
	assert.Equal(t, int32(11), got[10].PlayerID)
	assert.Equal(t, int32(12), got[11].PlayerID)
}

func TestCompute_PRWRBounds(t *testing.T) {
	snap := Snapshot{TrackIDs: []int32{1, 2, 3}}
	values := []int32{100, 101, 150, 999, 3000}
	for track := int32(1); track <= 3; track++ {
		for i, v := range values {
			snap.Field = append(snap.Field, pb(int32(i+1), track, false, v*track))
		}
	}

	got := Compute(PersonalRecordWorldRecord, snap, boolPtr(false))
	require.NotEmpty(t, got)
	for _, e := range got {
		assert.Greater(t, e.Value, 0.0)
		assert.LessOrEqual(t, e.Value, 1.0)
	}
	assert.Equal(t, int32(1), got[0].PlayerID)
	assert.Equal(t, 1.0, got[0].Value)
}

func TestCompute_EmptySnapshot(t *testing.T) {
	for _, rt := range AllRankingTypes {
		assert.Empty(t, Compute(rt, Snapshot{}, nil), rt.String())
	}
}

func TestComputeCountry(t *testing.T) {
	groups := map[int32]int32{4: 4, 5: 5, 7: 4}
	group := func(regionID int32) (int32, bool) {
		g, ok := groups[regionID]
		return g, ok
	}

	got := ComputeCountry(twoTrackSnapshot(), boolPtr(false), group, 0)
	require.Len(t, got, 2)
	assert.Equal(t, CountryRankingEntry{Rank: 1, RegionID: 4, Value: 1.25, Players: 2}, got[0])
	assert.Equal(t, CountryRankingEntry{Rank: 2, RegionID: 5, Value: 2, Players: 1}, got[1])

	limited := ComputeCountry(twoTrackSnapshot(), boolPtr(false), group, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, int32(4), limited[0].RegionID)

	none := ComputeCountry(twoTrackSnapshot(), boolPtr(false), func(int32) (int32, bool) { return 0, false }, 0)
	assert.Empty(t, none)
}

func TestComputeCountry_TiesBreakByRegionID(t *testing.T) {
	snap := Snapshot{
		TrackIDs: []int32{1},
		Field:    []PersonalBest{pb(1, 1, false, 100), pb(2, 1, false, 100)},
		Players: map[int32]Player{
			1: {ID: 1, RegionID: 9},
			2: {ID: 2, RegionID: 3},
		},
	}
	got := ComputeCountry(snap, boolPtr(false), func(id int32) (int32, bool) { return id, true }, 0)
	require.Len(t, got, 2)
	assert.Equal(t, int32(3), got[0].RegionID)
	assert.Equal(t, int32(9), got[1].RegionID)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, 1, got[1].Rank)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, NonShortcut, CategoryFromCode(0))
	assert.Equal(t, Unrestricted, CategoryFromCode(2))
	assert.Equal(t, NonShortcut, CategoryFromCode(7))
	assert.Equal(t, NonShortcut, CategoryFromCode(-1))
	assert.Equal(t, NonShortcut, CategoryFromCode(257))
	assert.Equal(t, NonShortcut, CategoryFromCode(258))

	assert.True(t, Unrestricted.Includes(NonShortcut))
	assert.True(t, Shortcut.Includes(Shortcut))
	assert.False(t, NonShortcut.Includes(Shortcut))
}

func TestRankingType(t *testing.T) {
	for _, rt := range AllRankingTypes {
		assert.Equal(t, 0.0, rt.Seed())
	}
	assert.True(t, TotalTime.Ascending())
	assert.True(t, AverageFinish.Ascending())
	assert.False(t, AverageRankRating.Ascending())
	assert.False(t, PersonalRecordWorldRecord.Ascending())
	assert.False(t, TallyPoints.Ascending())
}

func TestEvents(t *testing.T) {
	assert.Equal(t, []Event{{1, false}, {1, true}, {2, false}, {2, true}}, Events([]int32{1, 2}, nil))
	assert.Equal(t, []Event{{1, true}, {2, true}}, Events([]int32{1, 2}, boolPtr(true)))
	assert.Empty(t, Events(nil, nil))
}
