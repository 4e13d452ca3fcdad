package domain

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrConflict     = errors.New("record already exists")
	ErrForbidden    = errors.New("access forbidden")
)

// Authentication failures. Missing, invalid and expired tokens map to 401;
// a credential mismatch on login maps to 403.
var (
	ErrMissingCredentials = errors.New("missing or malformed authorization header")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
