package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string                 `json:"error"`
	Code   string                 `json:"code"`
	Fields validation.FieldErrors `json:"fields,omitempty"`
}

type domainError struct {
	err    error
	status int
	code   string
}

// Order matters only for wrapped errors matching more than one sentinel.
var domainErrors = []domainError{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domain.ErrNotAuthenticated, http.StatusUnauthorized, "not_authenticated"},
	{domain.ErrSessionExpired, http.StatusUnauthorized, "session_expired"},
	{domain.ErrRoleMismatch, http.StatusForbidden, "role_mismatch"},
	{domain.ErrAccountInactive, http.StatusForbidden, "account_inactive"},
	{domain.ErrEmailNotVerified, http.StatusForbidden, "email_not_verified"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrUserExists, http.StatusConflict, "user_exists"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	// One-time tokens (verify, reset) are not session credentials; a 401 here
	// would make clients drop an unrelated session.
	{domain.ErrInvalidToken, http.StatusBadRequest, "invalid_token"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain and
// validation errors to status codes and renders
// {"error": "<message>", "code": "<code>"}. Unexpected errors are logged and
// answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var fields validation.FieldErrors
	if errors.As(err, &fields) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Code:   "validation_failed",
			Fields: fields,
		}
	}

	// Echo's own errors (bind failures, 404 from router, rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Code: statusCode(he.Code)}
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			return de.status, errorResponse{Error: de.err.Error(), Code: de.code}
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal_error"}
}

func statusCode(status int) string {
	switch status {
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusUnauthorized:
		return "not_authenticated"
	}
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
