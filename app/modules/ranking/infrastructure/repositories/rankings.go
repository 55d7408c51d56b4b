package rankingdb

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	rankingdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking/domain"
)

// insertBatchSize bounds the rows per INSERT statement.
const insertBatchSize = 1000

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new ranking repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) ListTrackIDs(ctx context.Context, db bun.IDB) ([]int32, error) {
	db = r.resolveDB(db)
	var ids []int32
	err := db.NewSelect().
		Model((*Track)(nil)).
		Column("id").
		Order("id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return ids, nil
}

// applyScoreFilter adds the category, date and lap predicates shared by every
// score aggregate.
func applyScoreFilter(q *bun.SelectQuery, filter ScoreFilter) *bun.SelectQuery {
	q = q.
		Where("s.category <= ?", int8(filter.Category)).
		Where("s.date <= ?::date", filter.AsOf.Format(time.DateOnly)).
		Where("s.value > 0")
	if filter.Lap != nil {
		q = q.Where("s.is_lap = ?", *filter.Lap)
	}
	return q
}

func (r *Impl) PersonalBests(ctx context.Context, db bun.IDB, filter ScoreFilter) ([]rankingdomain.PersonalBest, error) {
	db = r.resolveDB(db)

	q := db.NewSelect().
		Model((*Score)(nil)).
		ColumnExpr("s.player_id, s.track_id, s.is_lap").
		ColumnExpr("MIN(s.value) AS value").
		GroupExpr("s.player_id, s.track_id, s.is_lap")
	q = applyScoreFilter(q, filter)
	if filter.RegionIDs != nil {
		q = q.
			Join("JOIN players AS p ON p.id = s.player_id").
			Where("p.region_id IN (?)", bun.In(filter.RegionIDs))
	}

	var rows []personalBestRow
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to get personal bests: %w", err)
	}

	out := make([]rankingdomain.PersonalBest, len(rows))
	for i, row := range rows {
		out[i] = rankingdomain.PersonalBest{
			PlayerID: row.PlayerID,
			Event:    rankingdomain.Event{TrackID: row.TrackID, IsLap: row.IsLap},
			Value:    row.Value,
		}
	}
	return out, nil
}

func (r *Impl) Records(ctx context.Context, db bun.IDB, filter ScoreFilter) (map[rankingdomain.Event]int32, error) {
	db = r.resolveDB(db)

	q := db.NewSelect().
		Model((*Score)(nil)).
		ColumnExpr("s.track_id, s.is_lap").
		ColumnExpr("MIN(s.value) AS value").
		GroupExpr("s.track_id, s.is_lap")
	q = applyScoreFilter(q, filter)

	var rows []recordRow
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	out := make(map[rankingdomain.Event]int32, len(rows))
	for _, row := range rows {
		out[rankingdomain.Event{TrackID: row.TrackID, IsLap: row.IsLap}] = row.Value
	}
	return out, nil
}

func (r *Impl) PlayersByID(ctx context.Context, db bun.IDB, ids []int32) (map[int32]rankingdomain.Player, error) {
	out := make(map[int32]rankingdomain.Player, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	db = r.resolveDB(db)

	var rows []Player
	err := db.NewSelect().
		Model(&rows).
		Where("p.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	for _, p := range rows {
		out[p.ID] = rankingdomain.Player{ID: p.ID, Name: p.Name, RegionID: p.RegionID}
	}
	return out, nil
}

func (r *Impl) InsertPlayers(ctx context.Context, db bun.IDB, players []Player) error {
	db = r.resolveDB(db)
	for start := 0; start < len(players); start += insertBatchSize {
		batch := players[start:min(start+insertBatchSize, len(players))]
		_, err := db.NewInsert().
			Model(&batch).
			On("CONFLICT (id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("region_id = EXCLUDED.region_id").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert players: %w", err)
		}
	}
	return nil
}

func (r *Impl) InsertTracks(ctx context.Context, db bun.IDB, tracks []Track) error {
	db = r.resolveDB(db)
	for start := 0; start < len(tracks); start += insertBatchSize {
		batch := tracks[start:min(start+insertBatchSize, len(tracks))]
		_, err := db.NewInsert().
			Model(&batch).
			On("CONFLICT (id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert tracks: %w", err)
		}
	}
	return nil
}

func (r *Impl) InsertScores(ctx context.Context, db bun.IDB, scores []Score) error {
	db = r.resolveDB(db)
	for start := 0; start < len(scores); start += insertBatchSize {
		batch := scores[start:min(start+insertBatchSize, len(scores))]
		if _, err := db.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert scores: %w", err)
		}
	}
	return nil
}
