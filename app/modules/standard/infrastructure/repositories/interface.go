package standarddb

import (
	"context"

	"github.com/uptrace/bun"

	standarddomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/domain"
)

// Repository defines the persistence contract for standard levels.
type Repository interface {
	ListLegacy(ctx context.Context, db bun.IDB) ([]standarddomain.StandardLevel, error)
	InsertLevels(ctx context.Context, db bun.IDB, levels []StandardLevel) error
}
