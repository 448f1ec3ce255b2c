package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

// Error is a rejection rendered by the API error handler.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d (%s)", e.Status, e.Code)
	}
	return e.Message
}

// Unwrap maps the wire code back onto the domain sentinel so callers can use
// errors.Is across the network boundary.
func (e *Error) Unwrap() error {
	switch e.Code {
	case "invalid_credentials":
		return domain.ErrInvalidCredentials
	case "role_mismatch":
		return domain.ErrRoleMismatch
	case "account_inactive":
		return domain.ErrAccountInactive
	case "email_not_verified":
		return domain.ErrEmailNotVerified
	case "session_expired", "not_authenticated":
		return domain.ErrSessionExpired
	case "invalid_token":
		return domain.ErrInvalidToken
	case "forbidden":
		return domain.ErrForbidden
	case "user_exists":
		return domain.ErrUserExists
	case "user_not_found":
		return domain.ErrUserNotFound
	case "validation_failed":
		return e.fieldErrors()
	}
	return nil
}

func (e *Error) fieldErrors() validation.FieldErrors {
	out := make(validation.FieldErrors, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, validation.FieldError{Field: f.Field, Code: f.Code, Message: f.Message})
	}
	return out
}

// TransportError means the request never produced an API answer: the server
// was unreachable, the context ended or the body was unreadable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "request failed: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

type errorEnvelope struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []FieldError `json:"fields"`
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Code != "" {
		apiErr.Code = env.Code
		apiErr.Message = env.Error
		apiErr.Fields = env.Fields
		return apiErr
	}

	apiErr.Message = http.StatusText(resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Code = "not_authenticated"
	case http.StatusForbidden:
		apiErr.Code = "forbidden"
	}
	// Gateways and proxies answer 5xx without our envelope.
	if resp.StatusCode >= http.StatusInternalServerError {
		return &TransportError{Err: apiErr}
	}
	return apiErr
}
