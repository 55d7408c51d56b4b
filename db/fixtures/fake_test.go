package fixtures

import (
	"context"

	"github.com/uptrace/bun"

	authdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories"
	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	standarddb "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/repositories"
)

// FakeWriter records every insert handed to it. It satisfies all four writer
// interfaces.
type FakeWriter struct {
	trace []string

	Regions []regiondomain.Region
	Players []rankingdb.Player
	Tracks  []rankingdb.Track
	Scores  []rankingdb.Score
	Levels  []standarddb.StandardLevel
	Users   []authdb.User

	InsertScoresFunc func(ctx context.Context, db bun.IDB, scores []rankingdb.Score) error
}

func (f *FakeWriter) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeWriter) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeWriter) InsertRegions(ctx context.Context, db bun.IDB, regions []regiondomain.Region) error {
	f.record("InsertRegions")
	f.Regions = append(f.Regions, regions...)
	return nil
}

func (f *FakeWriter) InsertPlayers(ctx context.Context, db bun.IDB, players []rankingdb.Player) error {
	f.record("InsertPlayers")
	f.Players = append(f.Players, players...)
	return nil
}

func (f *FakeWriter) InsertTracks(ctx context.Context, db bun.IDB, tracks []rankingdb.Track) error {
	f.record("InsertTracks")
	f.Tracks = append(f.Tracks, tracks...)
	return nil
}

func (f *FakeWriter) InsertScores(ctx context.Context, db bun.IDB, scores []rankingdb.Score) error {
	f.record("InsertScores")
	if f.InsertScoresFunc != nil {
		return f.InsertScoresFunc(ctx, db, scores)
	}
	f.Scores = append(f.Scores, scores...)
	return nil
}

func (f *FakeWriter) InsertLevels(ctx context.Context, db bun.IDB, levels []standarddb.StandardLevel) error {
	f.record("InsertLevels")
	f.Levels = append(f.Levels, levels...)
	return nil
}

func (f *FakeWriter) InsertUsers(ctx context.Context, db bun.IDB, users []authdb.User) error {
	f.record("InsertUsers")
	f.Users = append(f.Users, users...)
	return nil
}
