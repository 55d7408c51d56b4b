//go:build integration

package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	authdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories"
	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	regiondb "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/infrastructure/repositories"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  uint64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s), seed: s}
}

// Seed returns the seed the generator was built with.
func (g *TestDataGenerator) Seed() uint64 {
	return g.seed
}

func ptr(v int32) *int32 { return &v }

// StandardRegions is a fixed tree used by most tests:
//
//	1 world
//	└── 2 continent
//	    ├── 3 country
//	    │   └── 4 subnational
//	    └── 5 country
func StandardRegions() []regiondomain.Region {
	return []regiondomain.Region{
		{ID: 1, Type: regiondomain.World},
		{ID: 2, Type: regiondomain.Continent, ParentID: ptr(1)},
		{ID: 3, Type: regiondomain.Country, ParentID: ptr(2)},
		{ID: 4, Type: regiondomain.Subnational, ParentID: ptr(3)},
		{ID: 5, Type: regiondomain.Country, ParentID: ptr(2)},
	}
}

// GeneratePlayers creates count players spread across regionIDs.
func (g *TestDataGenerator) GeneratePlayers(count int, regionIDs []int32) []rankingdb.Player {
	players := make([]rankingdb.Player, count)
	for i := range players {
		players[i] = rankingdb.Player{
			ID:       int32(i + 1),
			Name:     g.faker.Name(),
			RegionID: regionIDs[g.faker.IntRange(0, len(regionIDs)-1)],
		}
	}
	return players
}

// GenerateTracks creates count tracks with ids starting at 1.
func (g *TestDataGenerator) GenerateTracks(count int) []rankingdb.Track {
	tracks := make([]rankingdb.Track, count)
	for i := range tracks {
		tracks[i] = rankingdb.Track{ID: int32(i + 1), Name: g.faker.City() + " Circuit"}
	}
	return tracks
}

// GenerateScores gives every player a course and a lap time on every track,
// dated within the last year of asOf.
func (g *TestDataGenerator) GenerateScores(players []rankingdb.Player, tracks []rankingdb.Track, asOf time.Time) []rankingdb.Score {
	scores := make([]rankingdb.Score, 0, len(players)*len(tracks)*2)
	for _, p := range players {
		for _, tr := range tracks {
			date := g.faker.DateRange(asOf.AddDate(-1, 0, 0), asOf).Truncate(24 * time.Hour)
			course := int32(g.faker.IntRange(60_000, 180_000))
			scores = append(scores,
				rankingdb.Score{PlayerID: p.ID, TrackID: tr.ID, Category: int8(g.faker.IntRange(0, 2)), Value: course, Date: date},
				rankingdb.Score{PlayerID: p.ID, TrackID: tr.ID, Category: int8(g.faker.IntRange(0, 2)), IsLap: true, Value: course / 3, Date: date},
			)
		}
	}
	return scores
}

// GenerateUser returns an account whose bcrypt hash matches the returned
// password.
func (g *TestDataGenerator) GenerateUser(id int32, admin bool) (authdb.User, string, error) {
	password := g.faker.Password(true, true, true, false, false, 16)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return authdb.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}
	return authdb.User{
		ID:           id,
		Username:     g.faker.Username(),
		PasswordHash: string(hash),
		IsAdmin:      admin,
	}, password, nil
}

// SeedRankingData inserts regions, players, tracks and scores through the
// module repositories.
func SeedRankingData(ctx context.Context, db bun.IDB, regions []regiondomain.Region, players []rankingdb.Player, tracks []rankingdb.Track, scores []rankingdb.Score) error {
	if err := regiondb.NewRepository(db).InsertRegions(ctx, db, regions); err != nil {
		return err
	}
	repo := rankingdb.NewRepository(db)
	if err := repo.InsertPlayers(ctx, db, players); err != nil {
		return err
	}
	if err := repo.InsertTracks(ctx, db, tracks); err != nil {
		return err
	}
	return repo.InsertScores(ctx, db, scores)
}
