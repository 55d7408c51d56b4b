package rankingdomain

import "fmt"

// Category is the ruleset a time was set under. A time counts toward every
// category whose code is at least its own: a non-shortcut time is also a valid
// shortcut and unrestricted time.
type Category int8

const (
	NonShortcut Category = iota
	Shortcut
	Unrestricted
)

// CategoryFromCode maps the cat parameter onto a Category. Unknown codes fall
// back to NonShortcut.
func CategoryFromCode(code int) Category {
	if code < int(NonShortcut) || code > int(Unrestricted) {
		return NonShortcut
	}
	return Category(code)
}

// Includes reports whether a score set under scored counts toward c.
func (c Category) Includes(scored Category) bool {
	return scored <= c
}

func (c Category) String() string {
	switch c {
	case NonShortcut:
		return "nonsc"
	case Shortcut:
		return "sc"
	case Unrestricted:
		return "unres"
	default:
		return fmt.Sprintf("Category(%d)", int8(c))
	}
}

// RankingType selects the metric a ranking is ordered by.
type RankingType int8

const (
	TotalTime RankingType = iota
	AverageFinish
	AverageRankRating
	PersonalRecordWorldRecord
	TallyPoints
)

// AllRankingTypes lists every metric in declaration order.
var AllRankingTypes = []RankingType{TotalTime, AverageFinish, AverageRankRating, PersonalRecordWorldRecord, TallyPoints}

func (t RankingType) String() string {
	switch t {
	case TotalTime:
		return "totaltime"
	case AverageFinish:
		return "af"
	case AverageRankRating:
		return "arr"
	case PersonalRecordWorldRecord:
		return "prwr"
	case TallyPoints:
		return "tally"
	default:
		return fmt.Sprintf("RankingType(%d)", int8(t))
	}
}

// Seed is the accumulator start value for the metric.
func (t RankingType) Seed() float64 {
	return 0
}

// Ascending reports whether lower values rank higher.
func (t RankingType) Ascending() bool {
	return t == TotalTime || t == AverageFinish
}

// Event is one leaderboard within a category: a track in course or lap mode.
type Event struct {
	TrackID int32
	IsLap   bool
}

// Events expands tracks into the events a ranking covers. A nil lap filter
// keeps both modes.
func Events(trackIDs []int32, lap *bool) []Event {
	modes := []bool{false, true}
	if lap != nil {
		modes = []bool{*lap}
	}
	out := make([]Event, 0, len(trackIDs)*len(modes))
	for _, id := range trackIDs {
		for _, m := range modes {
			out = append(out, Event{TrackID: id, IsLap: m})
		}
	}
	return out
}

// PersonalBest is a player's best time in an event, in milliseconds.
type PersonalBest struct {
	PlayerID int32
	Event
	Value int32
}

// Player is the identity attached to a ranking row.
type Player struct {
	ID       int32
	Name     string
	RegionID int32
}

// RankingEntry is one row of a player ranking.
type RankingEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   int32   `json:"player_id"`
	PlayerName string  `json:"player_name"`
	RegionID   int32   `json:"region_id"`
	Value      float64 `json:"value"`
	Events     int     `json:"events"`
}

// CountryRankingEntry is one row of a region-grouped ranking.
type CountryRankingEntry struct {
	Rank     int     `json:"rank"`
	RegionID int32   `json:"region_id"`
	Value    float64 `json:"value"`
	Players  int     `json:"players"`
}

// Snapshot is the data one ranking computation reads.
type Snapshot struct {
	// TrackIDs defines the events in scope together with the lap filter.
	TrackIDs []int32
	// Field holds the personal bests of every in-scope player.
	Field []PersonalBest
	// Records holds the best time per event across all regions. Events with no
	// entry fall back to the best time in Field.
	Records map[Event]int32
	Players map[int32]Player
}
