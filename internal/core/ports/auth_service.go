package ports

import (
	"context"
	"time"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

// SignInInput carries the sign-in form. Role is zero when the caller did not pick one.
type SignInInput struct {
	Email    string
	Password string
	Role     domain.Role
}

// SessionResult is returned whenever a session token is issued.
type SessionResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	TokenID   string
	UserID    string
	Email     string
	Name      string
	Role      domain.Role
	ExpiresAt time.Time
}

// Identity converts the claims into the identity value object.
func (c TokenClaims) Identity() domain.Identity {
	return domain.NewIdentity(c.UserID, c.Email, c.Role, c.Name)
}

// AuthService is the use-case boundary for account access.
type AuthService interface {
	SignUpJobSeeker(ctx context.Context, in validation.JobSeekerSignup) (*domain.User, error)
	SignUpEmployer(ctx context.Context, in validation.EmployerSignup) (*domain.User, error)
	SignUpAdmin(ctx context.Context, in validation.AdminSignup) (*domain.User, error)

	SignIn(ctx context.Context, in SignInInput) (*SessionResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	SignOut(ctx context.Context, claims TokenClaims) error
	Refresh(ctx context.Context, claims TokenClaims) (*SessionResult, error)

	VerifyEmail(ctx context.Context, token, email string) (*SessionResult, error)
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// TokenVerifier validates bearer tokens for the auth middleware.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (TokenClaims, error)
}
