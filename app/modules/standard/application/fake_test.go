package standardservice

import (
	"context"

	"github.com/uptrace/bun"

	standarddomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/domain"
	standarddb "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/infrastructure/repositories"
)

// ------------------------
// Fake Standard Repo
// ------------------------

type FakeStandardRepo struct {
	trace []string

	ListLegacyFunc   func(ctx context.Context, db bun.IDB) ([]standarddomain.StandardLevel, error)
	InsertLevelsFunc func(ctx context.Context, db bun.IDB, levels []standarddb.StandardLevel) error
}

func (f *FakeStandardRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeStandardRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStandardRepo) ListLegacy(ctx context.Context, db bun.IDB) ([]standarddomain.StandardLevel, error) {
	f.record("ListLegacy")
	if f.ListLegacyFunc != nil {
		return f.ListLegacyFunc(ctx, db)
	}
	return []standarddomain.StandardLevel{}, nil
}

func (f *FakeStandardRepo) InsertLevels(ctx context.Context, db bun.IDB, levels []standarddb.StandardLevel) error {
	f.record("InsertLevels")
	if f.InsertLevelsFunc != nil {
		return f.InsertLevelsFunc(ctx, db, levels)
	}
	return nil
}

var _ standarddb.Repository = (*FakeStandardRepo)(nil)
