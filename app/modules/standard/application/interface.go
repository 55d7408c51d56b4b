package standardservice

import (
	"context"

	standarddomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/standard/domain"
)

// Service serves the cached standard levels.
type Service interface {
	Legacy(ctx context.Context) ([]standarddomain.StandardLevel, error)
	Invalidate()
}
