package standarddb

import (
	"github.com/uptrace/bun"

	standarddomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/domain"
)

// StandardLevel is the bun model for standard_levels.
type StandardLevel struct {
	bun.BaseModel `bun:"table:standard_levels,alias:sl"`

	ID       int32  `bun:"id,pk"`
	Code     string `bun:"code,notnull"`
	Value    int32  `bun:"value,notnull"`
	IsLegacy bool   `bun:"is_legacy,notnull"`
}

func (s *StandardLevel) toDomain() standarddomain.StandardLevel {
	return standarddomain.StandardLevel{ID: s.ID, Code: s.Code, Value: s.Value, IsLegacy: s.IsLegacy}
}

// FromDomain converts a domain level into its row.
func FromDomain(s standarddomain.StandardLevel) StandardLevel {
	return StandardLevel{ID: s.ID, Code: s.Code, Value: s.Value, IsLegacy: s.IsLegacy}
}
