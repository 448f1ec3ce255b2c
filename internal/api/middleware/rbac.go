package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/skillbridge/jobmatch/internal/core/domain"
)

// Guard enforces policy against the identity injected by Auth. Requests with
// no identity fail with 401 before any role is considered.
func Guard(policy domain.RouteGuardPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id *domain.Identity
			if claims, ok := Claims(c); ok {
				identity := claims.Identity()
				id = &identity
			}

			switch policy.Check(id) {
			case domain.AccessGranted:
				return next(c)
			case domain.AccessForbidden:
				return domain.ErrForbidden
			default:
				return domain.ErrNotAuthenticated
			}
		}
	}
}

// RequireRole admits exactly one role.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return Guard(domain.Require(role))
}

// AllowRoles admits any of roles; with none it admits any signed-in user.
func AllowRoles(roles ...domain.Role) echo.MiddlewareFunc {
	return Guard(domain.AllowAny(roles...))
}
