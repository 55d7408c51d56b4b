package rankingdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
)

// ScoreFilter scopes the scores a ranking reads.
type ScoreFilter struct {
	Category rankingdomain.Category
	// Lap restricts to lap or course times when non-nil.
	Lap *bool
	// AsOf keeps scores dated on or before this day.
	AsOf time.Time
	// RegionIDs restricts to players in these regions when non-nil.
	RegionIDs []int32
}

// Repository defines the read and import contract for scores, players and
// tracks.
type Repository interface {
	ListTrackIDs(ctx context.Context, db bun.IDB) ([]int32, error)

	// PersonalBests returns each player's best time per event under filter.
	PersonalBests(ctx context.Context, db bun.IDB, filter ScoreFilter) ([]rankingdomain.PersonalBest, error)

	// Records returns the best time per event under filter, ignoring RegionIDs.
	Records(ctx context.Context, db bun.IDB, filter ScoreFilter) (map[rankingdomain.Event]int32, error)

	// PlayersByID returns the players with the given ids keyed by id.
	PlayersByID(ctx context.Context, db bun.IDB, ids []int32) (map[int32]rankingdomain.Player, error)

	InsertPlayers(ctx context.Context, db bun.IDB, players []Player) error
	InsertTracks(ctx context.Context, db bun.IDB, tracks []Track) error
	InsertScores(ctx context.Context, db bun.IDB, scores []Score) error
}
