package authdb

import "errors"

// Sentinel errors for the auth repository layer. The service decides how they
// surface to callers.
var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user record not found")

	// ErrDecoding indicates a stored attempt row does not match the expected shape.
	ErrDecoding = errors.New("failed to decode login attempt row")
)
