package authservice

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two are not distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrOnCooldown is returned while too many recent attempts block a login.
	ErrOnCooldown = errors.New("too many login attempts")

	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrGenerateToken is returned when token generation fails.
	ErrGenerateToken = errors.New("failed to generate token")
)
