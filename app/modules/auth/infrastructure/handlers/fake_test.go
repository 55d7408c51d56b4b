package authhandlers

import (
	"context"
	"net/netip"

	authservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	LoginFunc         func(ctx context.Context, ip netip.Addr, username, password string) (*authservice.LoginResponse, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

func (f *FakeService) Login(ctx context.Context, ip netip.Addr, username, password string) (*authservice.LoginResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, ip, username, password)
	}
	return &authservice.LoginResponse{Token: "fake-token"}, nil
}

func (f *FakeService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	return nil, authservice.ErrMissingToken
}

var _ authservice.Service = (*FakeService)(nil)
