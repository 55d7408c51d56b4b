package authservice

import (
	"context"
	"net/netip"
	"time"

	"github.com/uptrace/bun"

	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Claims{UserID: 1}, nil
}

var _ authjwt.Provider = (*FakeJWTProvider)(nil)

// ------------------------
// Fake Auth Repo
// ------------------------

type FakeAuthRepo struct {
	trace []string

	GetUserByUsernameFunc func(ctx context.Context, db bun.IDB, username string) (*authdomain.User, error)
	InsertUsersFunc       func(ctx context.Context, db bun.IDB, users []authdb.User) error
	RecordAttemptFunc     func(ctx context.Context, db bun.IDB, ip netip.Addr, userID int32) error
	RecentAttemptsFunc    func(ctx context.Context, db bun.IDB, ip netip.Addr, userID int32, now time.Time) ([]authdomain.LoginAttempt, error)
}

func (f *FakeAuthRepo) Trace() []string {
	return f.trace
}

func (f *FakeAuthRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeAuthRepo) GetUserByUsername(ctx context.Context, db bun.IDB, username string) (*authdomain.User, error) {
	f.record("GetUserByUsername")
	if f.GetUserByUsernameFunc != nil {
		return f.GetUserByUsernameFunc(ctx, db, username)
	}
	return nil, authdb.ErrNotFound
}

func (f *FakeAuthRepo) InsertUsers(ctx context.Context, db bun.IDB, users []authdb.User) error {
	f.record("InsertUsers")
	if f.InsertUsersFunc != nil {
		return f.InsertUsersFunc(ctx, db, users)
	}
	return nil
}

func (f *FakeAuthRepo) RecordAttempt(ctx context.Context, db bun.IDB, ip netip.Addr, userID int32) error {
	f.record("RecordAttempt")
	if f.RecordAttemptFunc != nil {
		return f.RecordAttemptFunc(ctx, db, ip, userID)
	}
	return nil
}

func (f *FakeAuthRepo) RecentAttempts(ctx context.Context, db bun.IDB, ip netip.Addr, userID int32, now time.Time) ([]authdomain.LoginAttempt, error) {
	f.record("RecentAttempts")
	if f.RecentAttemptsFunc != nil {
		return f.RecentAttemptsFunc(ctx, db, ip, userID, now)
	}
	return nil, nil
}

var _ authdb.Repository = (*FakeAuthRepo)(nil)
