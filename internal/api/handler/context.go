package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/skillbridge/jobmatch/internal/api/middleware"
	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
)

// ctxClaims extracts the claims injected by the Auth middleware. Their absence
// means the route was registered without Auth; answer 401 rather than panic.
func ctxClaims(c echo.Context) (ports.TokenClaims, error) {
	claims, ok := middleware.Claims(c)
	if !ok || claims.UserID == "" {
		return ports.TokenClaims{}, domain.ErrNotAuthenticated
	}
	return claims, nil
}
