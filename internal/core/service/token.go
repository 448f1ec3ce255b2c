package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
)

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) issueSession(user *domain.User) (*ports.SessionResult, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := sessionClaims{
		Email: user.Email,
		Name:  user.DisplayName(),
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &ports.SessionResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

// VerifyToken validates signature, expiry and revocation of a session token.
// Expired tokens yield ErrSessionExpired; anything else unusable yields
// ErrInvalidToken.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (ports.TokenClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.TokenClaims{}, domain.ErrSessionExpired
		}
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}
	if claims.Subject == "" || claims.ID == "" || !claims.Role.Valid() {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return ports.TokenClaims{}, domain.ErrSessionExpired
	}

	return ports.TokenClaims{
		TokenID:   claims.ID,
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
