package authdb

import (
	"context"
	"net/netip"
	"time"

	"github.com/uptrace/bun"

	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
)

// Repository defines the persistence contract for accounts and the login
// attempt log.
//
// Error semantics:
//   - ErrNotFound: GetUserByUsername found no row
//   - ErrDecoding: a stored attempt has an unparseable ip
//   - other errors: infrastructure failures
type Repository interface {
	GetUserByUsername(ctx context.Context, db bun.IDB, username string) (*authdomain.User, error)
	InsertUsers(ctx context.Context, db bun.IDB, users []User) error

	// RecordAttempt appends an attempt stamped with the database clock.
	RecordAttempt(ctx context.Context, db bun.IDB, ip netip.Addr, userID int32) error
	// RecentAttempts returns the attempts by userID since now minus 24h and
	// the attempts from ip within the last day, de-duplicated by row id.
	RecentAttempts(ctx context.Context, db bun.IDB, ip netip.Addr, userID int32, now time.Time) ([]authdomain.LoginAttempt, error)
}
