package usecase

import "errors"

// Authentication failures carry the exact message surfaced to the client.
// Anything else coming out of Verify is a storage failure and maps to a
// generic 500, never to a token-specific reason.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrAccountInactive    = errors.New("account is inactive")

	ErrTokenInvalid      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token has expired")
	ErrTokenRevoked      = errors.New("invalid or expired token")
	ErrTokenUserInactive = errors.New("user account is inactive")
)
