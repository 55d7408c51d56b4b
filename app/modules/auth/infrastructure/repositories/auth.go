package authdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/uptrace/bun"

	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new auth repository.
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

func (r *Impl) GetUserByUsername(ctx context.Context, db bun.IDB, username string) (*authdomain.User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("u.username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.toDomain(), nil
}

func (r *Impl) InsertUsers(ctx context.Context, db bun.IDB, users []User) error {
	if len(users) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&users).
		On("CONFLICT (username) DO UPDATE").
		Set("password_hash = EXCLUDED.password_hash").
		Set("is_admin = EXCLUDED.is_admin").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert users: %w", err)
	}
	return nil
}

func (r *Impl) RecordAttempt(ctx context.Context, db bun.IDB, ip netip.Addr, userID int32) error {
	db = r.resolveDB(db)
	attempt := &LoginAttempt{IP: ip.String(), UserID: userID}
	_, err := db.NewInsert().
		Model(attempt).
		ExcludeColumn("id").
		Value("timestamp", "NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	return nil
}

func (r *Impl) RecentAttempts(ctx context.Context, db bun.IDB, ip netip.Addr, userID int32, now time.Time) ([]authdomain.LoginAttempt, error) {
	db = r.resolveDB(db)

	// user branch cutoff is whole unix seconds, not a calendar day
	cutoff := time.Unix(now.Unix()-int64(authdomain.AttemptWindow/time.Second), 0).UTC()

	var byUser []LoginAttempt
	err := db.NewSelect().
		Model(&byUser).
		Where("t.user_id = ?", userID).
		Where("t.timestamp >= ?", cutoff).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts by user: %w", err)
	}

	var byIP []LoginAttempt
	err = db.NewSelect().
		Model(&byIP).
		Where("t.ip = ?::inet", ip.String()).
		Where("t.timestamp >= NOW() - INTERVAL '1 day'").
		OrderExpr("t.timestamp DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts by ip: %w", err)
	}

	userAttempts, err := toDomainAttempts(byUser)
	if err != nil {
		return nil, err
	}
	ipAttempts, err := toDomainAttempts(byIP)
	if err != nil {
		return nil, err
	}
	return authdomain.MergeAttempts(userAttempts, ipAttempts), nil
}

func toDomainAttempts(rows []LoginAttempt) ([]authdomain.LoginAttempt, error) {
	out := make([]authdomain.LoginAttempt, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
