package standarddb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	standarddomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/domain"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new standard level repository.
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

func (r *Impl) ListLegacy(ctx context.Context, db bun.IDB) ([]standarddomain.StandardLevel, error) {
	db = r.resolveDB(db)
	var rows []StandardLevel
	err := db.NewSelect().
		Model(&rows).
		Where("sl.is_legacy = TRUE").
		Order("sl.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list legacy standard levels: %w", err)
	}

	out := make([]standarddomain.StandardLevel, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

func (r *Impl) InsertLevels(ctx context.Context, db bun.IDB, levels []StandardLevel) error {
	if len(levels) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&levels).
		On("CONFLICT (id) DO UPDATE").
		Set("code = EXCLUDED.code").
		Set("value = EXCLUDED.value").
		Set("is_legacy = EXCLUDED.is_legacy").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert standard levels: %w", err)
	}
	return nil
}
