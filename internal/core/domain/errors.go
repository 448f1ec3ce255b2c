package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("selected role does not match this account")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountInactive    = errors.New("account is not active")
	ErrEmailNotVerified   = errors.New("email address has not been verified")
	ErrNotAuthenticated   = errors.New("authentication required")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
)
