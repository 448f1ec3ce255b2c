package ports

import (
	"context"
	"time"
)

// TokenPurpose scopes a one-time token.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "verify"
	PurposePasswordReset     TokenPurpose = "reset"
)

// TokenStore keeps session revocations and one-time tokens (Redis).
type TokenStore interface {
	// Revoke marks a session token id as unusable until it would have expired anyway.
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// IssueOneTime binds token to userID for ttl.
	IssueOneTime(ctx context.Context, purpose TokenPurpose, token, userID string, ttl time.Duration) error
	// PeekOneTime returns the bound user id without using the token up.
	PeekOneTime(ctx context.Context, purpose TokenPurpose, token string) (string, error)
	// ConsumeOneTime returns the bound user id and deletes the token.
	// Returns domain.ErrInvalidToken when the token is unknown or expired.
	ConsumeOneTime(ctx context.Context, purpose TokenPurpose, token string) (string, error)
}
