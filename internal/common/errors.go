package common

import "errors"

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrForbidden   = errors.New("admin role required")

	// ErrInvalidToken is returned when a stored session token cannot be parsed.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
