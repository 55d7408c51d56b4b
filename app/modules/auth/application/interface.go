package authservice

import (
	"context"
	"net/netip"
	"time"

	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
)

// Service defines the authentication service interface.
type Service interface {
	// Login checks the attempt cooldown for (ip, user), records the attempt
	// and issues a token when the password matches.
	Login(ctx context.Context, ip netip.Addr, username, password string) (*LoginResponse, error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
