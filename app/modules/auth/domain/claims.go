package authdomain

import "time"

// Claims is what a signed token asserts about its holder.
type Claims struct {
	UserID    int32
	Admin     bool
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired at now.
func (c *Claims) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// User is an account allowed to sign in.
type User struct {
	ID           int32
	Username     string
	PasswordHash string
	IsAdmin      bool
}
