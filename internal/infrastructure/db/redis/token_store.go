package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
)

// TokenStore keeps revoked session ids and one-time tokens.
//
// Key formats:
//
//	revoked:<jti>           -> "1", expires with the session token
//	<purpose>:<token>       -> user id, expires after the purpose TTL
type TokenStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client, now: time.Now}
}

func (s *TokenStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		// already expired, nothing left to revoke
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *TokenStore) IssueOneTime(ctx context.Context, purpose ports.TokenPurpose, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, oneTimeKey(purpose, token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("store %s token: %w", purpose, err)
	}
	return nil
}

func (s *TokenStore) PeekOneTime(ctx context.Context, purpose ports.TokenPurpose, token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidToken
	}
	userID, err := s.client.Get(ctx, oneTimeKey(purpose, token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("read %s token: %w", purpose, err)
	}
	return userID, nil
}

// ConsumeOneTime reads and deletes the token atomically (GETDEL).
func (s *TokenStore) ConsumeOneTime(ctx context.Context, purpose ports.TokenPurpose, token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidToken
	}
	userID, err := s.client.GetDel(ctx, oneTimeKey(purpose, token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("consume %s token: %w", purpose, err)
	}
	return userID, nil
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}

func oneTimeKey(purpose ports.TokenPurpose, token string) string {
	return fmt.Sprintf("%s:%s", purpose, token)
}
