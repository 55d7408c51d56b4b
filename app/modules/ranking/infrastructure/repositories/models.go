package rankingdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Player is a players row.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID       int32  `bun:"id,pk"`
	Name     string `bun:"name,notnull"`
	RegionID int32  `bun:"region_id,notnull"`
}

// Track is a tracks row.
type Track struct {
	bun.BaseModel `bun:"table:tracks,alias:t"`

	ID   int32  `bun:"id,pk"`
	Name string `bun:"name,notnull"`
}

// Score is a single submitted time in milliseconds.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID       int64     `bun:"id,pk,autoincrement"`
	PlayerID int32     `bun:"player_id,notnull"`
	TrackID  int32     `bun:"track_id,notnull"`
	Category int8      `bun:"category,notnull"`
	IsLap    bool      `bun:"is_lap,notnull"`
	Value    int32     `bun:"value,notnull"`
	Date     time.Time `bun:"date,type:date,notnull"`
}

// personalBestRow is the aggregate shape of PersonalBests.
type personalBestRow struct {
	PlayerID int32 `bun:"player_id"`
	TrackID  int32 `bun:"track_id"`
	IsLap    bool  `bun:"is_lap"`
	Value    int32 `bun:"value"`
}

// recordRow is the aggregate shape of Records.
type recordRow struct {
	TrackID int32 `bun:"track_id"`
	IsLap   bool  `bun:"is_lap"`
	Value   int32 `bun:"value"`
}
