package authdb

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/uptrace/bun"

	authdomain "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/domain"
)

// User is the bun model for an account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int32  `bun:"id,pk,autoincrement"`
	Username     string `bun:"username,notnull,unique"`
	PasswordHash string `bun:"password_hash,notnull"`
	IsAdmin      bool   `bun:"is_admin,notnull,default:false"`
}

func (u *User) toDomain() *authdomain.User {
	return &authdomain.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
	}
}

// LoginAttempt is the bun model for ip_request_throttles. The ip column is
// inet and travels as text.
type LoginAttempt struct {
	bun.BaseModel `bun:"table:ip_request_throttles,alias:t"`

	ID        int64     `bun:"id,pk,autoincrement"`
	IP        string    `bun:"ip,type:inet,notnull"`
	UserID    int32     `bun:"user_id,notnull"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp"`
}

func (a *LoginAttempt) toDomain() (authdomain.LoginAttempt, error) {
	ip, err := parseInet(a.IP)
	if err != nil {
		return authdomain.LoginAttempt{}, fmt.Errorf("%w: attempt %d has ip %q", ErrDecoding, a.ID, a.IP)
	}
	return authdomain.LoginAttempt{
		ID:        a.ID,
		IP:        ip.Unmap(),
		UserID:    a.UserID,
		Timestamp: a.Timestamp,
	}, nil
}

// parseInet accepts both the bare address and the host prefix form
// ("192.0.2.1/32") drivers may return for inet.
func parseInet(s string) (netip.Addr, error) {
	if ip, err := netip.ParseAddr(s); err == nil {
		return ip, nil
	}
	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Addr{}, err
	}
	return prefix.Addr(), nil
}
