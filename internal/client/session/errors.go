package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/skillbridge/jobmatch/internal/client/apiclient"
	"github.com/skillbridge/jobmatch/internal/core/domain"
)

var (
	ErrSignInInProgress = errors.New("a sign-in request is already in progress")
	ErrStaleResponse    = errors.New("session changed while the request was in flight")
	ErrNotSignedIn      = errors.New("not signed in")
)

// Kind is the closed set of sign-in failure kinds.
type Kind int

const (
	InvalidCredentials Kind = iota + 1
	RoleMismatch
	NetworkFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidCredentials:
		return "invalid_credentials"
	case RoleMismatch:
		return "role_mismatch"
	case NetworkFailure:
		return "network_failure"
	default:
		return "unknown"
	}
}

// AuthError is returned by SignIn and Rehydrate. It never implies that the
// existing session was changed.
type AuthError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// classify turns a backend failure into an AuthError with a user-facing
// message.
func classify(err error) *AuthError {
	switch {
	case errors.Is(err, domain.ErrRoleMismatch):
		return &AuthError{Kind: RoleMismatch, Message: "The selected role does not match this account.", Err: err}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &AuthError{Kind: InvalidCredentials, Message: "Invalid email or password.", Err: err}
	case errors.Is(err, domain.ErrAccountInactive):
		return &AuthError{Kind: InvalidCredentials, Message: "This account is not active.", Err: err}
	case errors.Is(err, domain.ErrEmailNotVerified):
		return &AuthError{Kind: InvalidCredentials, Message: "Verify your email address before signing in.", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &AuthError{Kind: NetworkFailure, Message: "The server took too long to respond. Try again.", Err: err}
	}

	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Kind: InvalidCredentials, Message: apiErr.Error(), Err: err}
		case http.StatusTooManyRequests:
			return &AuthError{Kind: NetworkFailure, Message: "Too many attempts. Wait a moment and try again.", Err: err}
		}
		return &AuthError{Kind: NetworkFailure, Message: "The server could not process the request. Try again.", Err: err}
	}
	return &AuthError{Kind: NetworkFailure, Message: "Could not reach the server. Try again.", Err: err}
}

// isAuthFailure reports whether err means the server no longer accepts the
// token.
func isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrSessionExpired) ||
		errors.Is(err, domain.ErrAccountInactive) ||
		errors.Is(err, domain.ErrNotAuthenticated)
}
