package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skillbridge/jobmatch/internal/api/metrics"
	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
)

const (
	claimsKey = "auth.claims"
	// RoleKey holds the caller's domain.Role for request loggers.
	RoleKey = "role"
)

// Auth validates the bearer token through verifier and injects the claims
// into the context. Missing or unusable tokens answer 401 not_authenticated,
// expired or revoked ones 401 session_expired.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrNotAuthenticated
			}

			claims, err := verifier.VerifyToken(c.Request().Context(), raw)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues(metrics.Result(err)).Inc()
				if errors.Is(err, domain.ErrInvalidToken) {
					return domain.ErrNotAuthenticated
				}
				return err
			}

			c.Set(claimsKey, claims)
			c.Set(RoleKey, claims.Role)
			return next(c)
		}
	}
}

// Claims returns the verified claims injected by Auth.
func Claims(c echo.Context) (ports.TokenClaims, bool) {
	claims, ok := c.Get(claimsKey).(ports.TokenClaims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
