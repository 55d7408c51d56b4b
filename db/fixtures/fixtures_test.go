package fixtures

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
)

func newLoader(w *FakeWriter) *Loader {
	return &Loader{Regions: w, Rankings: w, Standards: w, Users: w}
}

func fullFS() fstest.MapFS {
	return fstest.MapFS{
		"regions.json": {Data: []byte(`[
			{"pk": 2, "fields": {"type": "continent", "parent": 1}},
			{"pk": 1, "fields": {"type": "world", "parent": null}},
			{"pk": 3, "fields": {"type": "country", "parent": 2}}
		]`)},
		"players.json": {Data: []byte(`[{"pk": 10, "fields": {"name": "Alice", "region": 3}}]`)},
		"tracks.json":  {Data: []byte(`[{"pk": 1, "fields": {"name": "Luigi Circuit"}}]`)},
		"scores.json": {Data: []byte(`[
			{"pk": 7, "fields": {"player": 10, "track": 1, "category": 2, "is_lap": true, "value": 28500, "date": "2024-01-02"}},
			{"pk": 5, "fields": {"player": 10, "track": 1, "category": 0, "is_lap": false, "value": 90123, "date": "2023-12-31"}}
		]`)},
		"standardlevels.json": {Data: []byte(`[{"pk": 1, "fields": {"code": "God", "value": 1, "is_legacy": true}}]`)},
		"notes.txt":           {Data: []byte("ignored")},
	}
}

func TestLoadInto_OrderAndConversion(t *testing.T) {
	w := &FakeWriter{}
	summary, err := newLoader(w).LoadInto(context.Background(), nil, fullFS())
	require.NoError(t, err)

	assert.Equal(t, []string{"InsertRegions", "InsertPlayers", "InsertTracks", "InsertScores", "InsertLevels"}, w.Trace())
	assert.Equal(t, Summary{
		"regions.json":        3,
		"players.json":        1,
		"tracks.json":         1,
		"scores.json":         2,
		"standardlevels.json": 1,
	}, summary)

	require.Len(t, w.Regions, 3)
	assert.Equal(t, int32(1), w.Regions[0].ID)
	assert.Nil(t, w.Regions[0].ParentID)
	assert.Equal(t, regiondomain.Continent, w.Regions[1].Type)

	assert.Equal(t, []rankingdb.Player{{ID: 10, Name: "Alice", RegionID: 3}}, w.Players)

	require.Len(t, w.Scores, 2)
	assert.Equal(t, int64(5), w.Scores[0].ID)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), w.Scores[0].Date)
	assert.True(t, w.Scores[1].IsLap)
	assert.Equal(t, int8(2), w.Scores[1].Category)

	require.Len(t, w.Levels, 1)
	assert.True(t, w.Levels[0].IsLegacy)
	assert.Empty(t, w.Users)
}

func TestLoadInto_Failures(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		setup   func(w *FakeWriter)
		wantErr string
	}{
		{
			name:    "malformed json",
			fsys:    fstest.MapFS{"tracks.json": {Data: []byte(`{not json`)}},
			wantErr: "tracks.json",
		},
		{
			name: "orphan region",
			fsys: fstest.MapFS{"regions.json": {Data: []byte(`[
				{"pk": 1, "fields": {"type": "world", "parent": null}},
				{"pk": 2, "fields": {"type": "country", "parent": 9}}
			]`)}},
			wantErr: "regions.json",
		},
		{
			name:    "bad score date",
			fsys:    fstest.MapFS{"scores.json": {Data: []byte(`[{"pk": 1, "fields": {"player": 1, "track": 1, "category": 0, "value": 1, "date": "yesterday"}}]`)}},
			wantErr: "invalid date",
		},
		{
			name:    "unknown category",
			fsys:    fstest.MapFS{"scores.json": {Data: []byte(`[{"pk": 1, "fields": {"player": 1, "track": 1, "category": 7, "value": 1, "date": "2024-01-01"}}]`)}},
			wantErr: "unknown category",
		},
		{
			name: "writer error",
			fsys: fstest.MapFS{"scores.json": {Data: []byte(`[{"pk": 1, "fields": {"player": 1, "track": 1, "category": 0, "value": 1, "date": "2024-01-01"}}]`)}},
			setup: func(w *FakeWriter) {
				w.InsertScoresFunc = func(ctx context.Context, db bun.IDB, scores []rankingdb.Score) error {
					return errors.New("duplicate key")
				}
			},
			wantErr: "duplicate key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &FakeWriter{}
			if tt.setup != nil {
				tt.setup(w)
			}
			_, err := newLoader(w).LoadInto(context.Background(), nil, tt.fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFilesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"regions.json", "players.json", "tracks.json", "scores.json", "standardlevels.json", "users.json",
	}, Files())
}
