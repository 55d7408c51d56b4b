// Package fixtures imports the JSON fixture dumps that seed a fresh database.
//
// Each file is an array of {"pk": <id>, "fields": {...}} objects. Files are
// loaded in dependency order inside a single transaction; a missing file is
// skipped and any other failure aborts the whole import.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"time"

	"github.com/uptrace/bun"

	authdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories"
	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
	rankingdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/infrastructure/repositories"
	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
	standarddb "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/repositories"
)

const dateLayout = "2006-01-02"

// RegionWriter stores regions.
type RegionWriter interface {
	InsertRegions(ctx context.Context, db bun.IDB, regions []regiondomain.Region) error
}

// RankingWriter stores players, tracks and scores.
type RankingWriter interface {
	InsertPlayers(ctx context.Context, db bun.IDB, players []rankingdb.Player) error
	InsertTracks(ctx context.Context, db bun.IDB, tracks []rankingdb.Track) error
	InsertScores(ctx context.Context, db bun.IDB, scores []rankingdb.Score) error
}

// StandardWriter stores standard levels.
type StandardWriter interface {
	InsertLevels(ctx context.Context, db bun.IDB, levels []standarddb.StandardLevel) error
}

// UserWriter stores accounts.
type UserWriter interface {
	InsertUsers(ctx context.Context, db bun.IDB, users []authdb.User) error
}

// Loader imports fixture files through the module repositories.
type Loader struct {
	Regions   RegionWriter
	Rankings  RankingWriter
	Standards StandardWriter
	Users     UserWriter
	Logger    *slog.Logger
}

// Summary counts the rows imported per file.
type Summary map[string]int

type fixtureStep struct {
	file string
	load func(l *Loader, ctx context.Context, db bun.IDB, data []byte) (int, error)
}

// Order matters: players reference regions and scores reference both players
// and tracks.
var steps = []fixtureStep{
	{file: "regions.json", load: (*Loader).loadRegions},
	{file: "players.json", load: (*Loader).loadPlayers},
	{file: "tracks.json", load: (*Loader).loadTracks},
	{file: "scores.json", load: (*Loader).loadScores},
	{file: "standardlevels.json", load: (*Loader).loadStandardLevels},
	{file: "users.json", load: (*Loader).loadUsers},
}

// Files lists the fixture file names in import order.
func Files() []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.file
	}
	return out
}

// Load imports every fixture present in fsys inside one transaction.
func (l *Loader) Load(ctx context.Context, db *bun.DB, fsys fs.FS) (Summary, error) {
	var summary Summary
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		summary, err = l.LoadInto(ctx, tx, fsys)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// LoadInto imports every fixture present in fsys using db, which is usually
// an open transaction.
func (l *Loader) LoadInto(ctx context.Context, db bun.IDB, fsys fs.FS) (Summary, error) {
	logger := l.logger()
	summary := Summary{}

	for _, step := range steps {
		data, err := fs.ReadFile(fsys, step.file)
		if errors.Is(err, fs.ErrNotExist) {
			logger.InfoContext(ctx, "Fixture file not present, skipping", "file", step.file)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", step.file, err)
		}

		logger.InfoContext(ctx, "Loading fixture", "file", step.file)
		n, err := step.load(l, ctx, db, data)
		if err != nil {
			return nil, fmt.Errorf("failed to load fixture %s: %w", step.file, err)
		}
		summary[step.file] = n
	}

	return summary, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

type wrapper[T any] struct {
	PK     int64 `json:"pk"`
	Fields T     `json:"fields"`
}

// decode parses a fixture array sorted by primary key.
func decode[T any](data []byte) ([]wrapper[T], error) {
	var out []wrapper[T]
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	slices.SortFunc(out, func(a, b wrapper[T]) int {
		switch {
		case a.PK < b.PK:
			return -1
		case a.PK > b.PK:
			return 1
		}
		return 0
	})
	return out, nil
}

type regionFields struct {
	Type   regiondomain.RegionType `json:"type"`
	Parent *int32                  `json:"parent"`
}

func (l *Loader) loadRegions(ctx context.Context, db bun.IDB, data []byte) (int, error) {
	rows, err := decode[regionFields](data)
	if err != nil {
		return 0, err
	}
	regions := make([]regiondomain.Region, len(rows))
	for i, r := range rows {
		regions[i] = regiondomain.Region{ID: int32(r.PK), Type: r.Fields.Type, ParentID: r.Fields.Parent}
	}
	// Reject a broken tree before it reaches the database.
	if _, err := regiondomain.Build(regions); err != nil {
		return 0, err
	}
	return len(regions), l.Regions.InsertRegions(ctx, db, regions)
}

type playerFields struct {
	Name   string `json:"name"`
	Region int32  `json:"region"`
}

func (l *Loader) loadPlayers(ctx context.Context, db bun.IDB, data []byte) (int, error) {
	rows, err := decode[playerFields](data)
	if err != nil {
		return 0, err
	}
	players := make([]rankingdb.Player, len(rows))
	for i, r := range rows {
		players[i] = rankingdb.Player{ID: int32(r.PK), Name: r.Fields.Name, RegionID: r.Fields.Region}
	}
	return len(players), l.Rankings.InsertPlayers(ctx, db, players)
}

type trackFields struct {
	Name string `json:"name"`
}

func (l *Loader) loadTracks(ctx context.Context, db bun.IDB, data []byte) (int, error) {
	rows, err := decode[trackFields](data)
	if err != nil {
		return 0, err
	}
	tracks := make([]rankingdb.Track, len(rows))
	for i, r := range rows {
		tracks[i] = rankingdb.Track{ID: int32(r.PK), Name: r.Fields.Name}
	}
	return len(tracks), l.Rankings.InsertTracks(ctx, db, tracks)
}

type scoreFields struct {
	Player   int32  `json:"player"`
	Track    int32  `json:"track"`
	Category int8   `json:"category"`
	IsLap    bool   `json:"is_lap"`
	Value    int32  `json:"value"`
	Date     string `json:"date"`
}

func (l *Loader) loadScores(ctx context.Context, db bun.IDB, data []byte) (int, error) {
	rows, err := decode[scoreFields](data)
	if err != nil {
		return 0, err
	}
	scores := make([]rankingdb.Score, len(rows))
	for i, r := range rows {
		date, err := time.Parse(dateLayout, r.Fields.Date)
		if err != nil {
			return 0, fmt.Errorf("score %d: invalid date %q: %w", r.PK, r.Fields.Date, err)
		}
		if r.Fields.Category < int8(rankingdomain.NonShortcut) || r.Fields.Category > int8(rankingdomain.Unrestricted) {
			return 0, fmt.Errorf("score %d: unknown category %d", r.PK, r.Fields.Category)
		}
		if r.Fields.Value <= 0 {
			return 0, fmt.Errorf("score %d: value must be positive, got %d", r.PK, r.Fields.Value)
		}
		scores[i] = rankingdb.Score{
			ID:       r.PK,
			PlayerID: r.Fields.Player,
			TrackID:  r.Fields.Track,
			Category: r.Fields.Category,
			IsLap:    r.Fields.IsLap,
			Value:    r.Fields.Value,
			Date:     date,
		}
	}
	return len(scores), l.Rankings.InsertScores(ctx, db, scores)
}

type standardLevelFields struct {
	Code     string `json:"code"`
	Value    int32  `json:"value"`
	IsLegacy bool   `json:"is_legacy"`
}

func (l *Loader) loadStandardLevels(ctx context.Context, db bun.IDB, data []byte) (int, error) {
	rows, err := decode[standardLevelFields](data)
	if err != nil {
		return 0, err
	}
	levels := make([]standarddb.StandardLevel, len(rows))
	for i, r := range rows {
		levels[i] = standarddb.StandardLevel{
			ID:       int32(r.PK),
			Code:     r.Fields.Code,
			Value:    r.Fields.Value,
			IsLegacy: r.Fields.IsLegacy,
		}
	}
	return len(levels), l.Standards.InsertLevels(ctx, db, levels)
}

type userFields struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	IsAdmin      bool   `json:"is_admin"`
}

func (l *Loader) loadUsers(ctx context.Context, db bun.IDB, data []byte) (int, error) {
	rows, err := decode[userFields](data)
	if err != nil {
		return 0, err
	}
	users := make([]authdb.User, len(rows))
	for i, r := range rows {
		users[i] = authdb.User{
			ID:           int32(r.PK),
			Username:     r.Fields.Username,
			PasswordHash: r.Fields.PasswordHash,
			IsAdmin:      r.Fields.IsAdmin,
		}
	}
	return len(users), l.Users.InsertUsers(ctx, db, users)
}
