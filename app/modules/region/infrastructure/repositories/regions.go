package regiondb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	regiondomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/region/domain"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new region repository.
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

func (r *Impl) ListRegions(ctx context.Context, db bun.IDB) ([]regiondomain.Region, error) {
	db = r.resolveDB(db)

	var rows []Region
	if err := db.NewSelect().Model(&rows).Order("r.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	out := make([]regiondomain.Region, 0, len(rows))
	for i := range rows {
		region, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, region)
	}
	return out, nil
}

func (r *Impl) ListRegionsWithPlayerCount(ctx context.Context, db bun.IDB) ([]regiondomain.RegionWithPlayerCount, error) {
	db = r.resolveDB(db)

	var rows []RegionWithPlayerCount
	err := db.NewSelect().
		TableExpr("regions AS r").
		ColumnExpr("r.id, r.region_type, r.parent_id").
		ColumnExpr("COUNT(p.id) AS player_count").
		Join("LEFT JOIN players AS p ON p.region_id = r.id").
		GroupExpr("r.id").
		OrderExpr("r.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions with player count: %w", err)
	}

	out := make([]regiondomain.RegionWithPlayerCount, 0, len(rows))
	for _, row := range rows {
		base := Region{ID: row.ID, Type: row.Type, ParentID: row.ParentID}
		region, err := base.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, regiondomain.RegionWithPlayerCount{Region: region, DirectCount: row.PlayerCount})
	}
	return out, nil
}

func (r *Impl) InsertRegions(ctx context.Context, db bun.IDB, regions []regiondomain.Region) error {
	if len(regions) == 0 {
		return nil
	}
	db = r.resolveDB(db)

	rows := make([]Region, len(regions))
	for i, region := range regions {
		rows[i] = FromDomain(region)
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("region_type = EXCLUDED.region_type").
		Set("parent_id = EXCLUDED.parent_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert regions: %w", err)
	}
	return nil
}
