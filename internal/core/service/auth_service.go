package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

const (
	defaultTokenTTL        = 24 * time.Hour
	defaultVerificationTTL = 24 * time.Hour
	defaultResetTTL        = time.Hour
)

// AuthConfig tunes token lifetimes and signup behaviour.
type AuthConfig struct {
	JWTSecret                string
	TokenTTL                 time.Duration
	VerificationTTL          time.Duration
	ResetTTL                 time.Duration
	RequireEmailVerification bool
	// ClientURL is the base of links embedded in verification and reset messages.
	ClientURL string
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// AuthService implements registration, sign-in and session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	tokens   ports.TokenStore
	notifier ports.Notifier
	cfg      AuthConfig
	log      zerolog.Logger
	now      func() time.Time

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	tokens ports.TokenStore,
	notifier ports.Notifier,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = defaultVerificationTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = defaultResetTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("skillbridge-dummy-password"), cfg.BcryptCost)

	return &AuthService{
		users:     users,
		profiles:  profiles,
		tokens:    tokens,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		dummyHash: dummy,
	}
}

// SignUpJobSeeker registers an undergraduate and their profile.
func (s *AuthService) SignUpJobSeeker(ctx context.Context, in validation.JobSeekerSignup) (*domain.User, error) {
	user, err := s.createUser(ctx, &domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      domain.RoleJobSeeker,
	}, in.Password, !s.cfg.RequireEmailVerification)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.CreateJobSeeker(ctx, &domain.JobSeekerProfile{
		UserID:       user.ID,
		University:   in.University,
		FieldOfStudy: in.FieldOfStudy,
	}); err != nil {
		s.rollbackSignup(ctx, user)
		return nil, fmt.Errorf("create job seeker profile: %w", err)
	}

	s.afterSignup(ctx, user)
	return user, nil
}

// SignUpEmployer registers a company account and its profile.
func (s *AuthService) SignUpEmployer(ctx context.Context, in validation.EmployerSignup) (*domain.User, error) {
	user, err := s.createUser(ctx, &domain.User{
		FirstName: in.ContactPersonName,
		Email:     in.Email,
		Role:      domain.RoleEmployer,
	}, in.Password, !s.cfg.RequireEmailVerification)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.CreateEmployer(ctx, &domain.EmployerProfile{
		UserID:             user.ID,
		CompanyName:        in.CompanyName,
		ContactPersonName:  in.ContactPersonName,
		CompanySize:        in.CompanySize,
		Industry:           in.Industry,
		CompanyWebsite:     in.CompanyWebsite,
		CompanyDescription: in.CompanyDescription,
	}); err != nil {
		s.rollbackSignup(ctx, user)
		return nil, fmt.Errorf("create employer profile: %w", err)
	}

	s.afterSignup(ctx, user)
	return user, nil
}

// SignUpAdmin creates an already-verified admin. Callers must be admins.
func (s *AuthService) SignUpAdmin(ctx context.Context, in validation.AdminSignup) (*domain.User, error) {
	return s.createUser(ctx, &domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Role:      domain.RoleAdmin,
	}, in.Password, true)
}

func (s *AuthService) createUser(ctx context.Context, user *domain.User, password string, verified bool) (*domain.User, error) {
	if user.Email == "" || password == "" || !user.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user.PasswordHash = string(hash)
	user.Status = domain.StatusActive
	user.EmailVerified = verified
	user.CreatedAt = now
	user.UpdatedAt = now

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}

// rollbackSignup removes a user whose profile could not be stored so the
// same email can sign up again.
func (s *AuthService) rollbackSignup(ctx context.Context, user *domain.User) {
	if err := s.users.Delete(ctx, user.ID); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to roll back signup")
		return
	}
	s.log.Warn().Str("user_id", user.ID).Msg("signup rolled back")
}

func (s *AuthService) afterSignup(ctx context.Context, user *domain.User) {
	if user.EmailVerified {
		s.notify(ctx, ports.Notification{Kind: ports.NotifyWelcome, Recipient: user.Email, Name: user.DisplayName()})
		return
	}
	if err := s.sendVerification(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to send verification email")
	}
}

// SignIn checks credentials and issues a session token.
//
// Unknown email and wrong password both yield ErrInvalidCredentials. A
// correct password with a different selected role yields ErrRoleMismatch.
func (s *AuthService) SignIn(ctx context.Context, in ports.SignInInput) (*ports.SessionResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Role.Valid() && in.Role != user.Role {
		return nil, domain.ErrRoleMismatch
	}
	if user.Status != domain.StatusActive {
		return nil, domain.ErrAccountInactive
	}
	if s.cfg.RequireEmailVerification && !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	now := s.now()
	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	} else {
		user.LastLogin = &now
	}

	return s.issueSession(user)
}

// Me returns the account behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}
	if user.Status != domain.StatusActive {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

// SignOut revokes the presented token until its natural expiry.
func (s *AuthService) SignOut(ctx context.Context, claims ports.TokenClaims) error {
	if claims.TokenID == "" {
		return nil
	}
	if err := s.tokens.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info().Str("user_id", claims.UserID).Msg("user signed out")
	return nil
}

// Refresh issues a new token for the same account and revokes the old one.
func (s *AuthService) Refresh(ctx context.Context, claims ports.TokenClaims) (*ports.SessionResult, error) {
	user, err := s.Me(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != claims.Role {
		return nil, domain.ErrSessionExpired
	}

	result, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to revoke refreshed token")
	}
	return result, nil
}

// VerifyEmail consumes a verification token and signs the user in.
func (s *AuthService) VerifyEmail(ctx context.Context, token, email string) (*ports.SessionResult, error) {
	userID, err := s.tokens.PeekOneTime(ctx, ports.PurposeEmailVerification, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	// A link opened with the wrong address must not use the token up.
	if !strings.EqualFold(user.Email, strings.TrimSpace(email)) {
		return nil, domain.ErrInvalidToken
	}
	consumed, err := s.tokens.ConsumeOneTime(ctx, ports.PurposeEmailVerification, token)
	if err != nil {
		return nil, err
	}
	if consumed != userID {
		return nil, domain.ErrInvalidToken
	}

	if !user.EmailVerified {
		if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("mark email verified: %w", err)
		}
		user.EmailVerified = true
	}

	s.notify(ctx, ports.Notification{Kind: ports.NotifyWelcome, Recipient: user.Email, Name: user.DisplayName()})
	return s.issueSession(user)
}

// ResendVerification sends a fresh verification link. Unknown or already
// verified addresses are silently accepted.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.EmailVerified {
		return nil
	}
	return s.sendVerification(ctx, user)
}

// ForgotPassword sends a reset link. Unknown addresses are silently accepted.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.tokens.IssueOneTime(ctx, ports.PurposePasswordReset, token, user.ID, s.cfg.ResetTTL); err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	s.notify(ctx, ports.Notification{
		Kind:      ports.NotifyPasswordReset,
		Recipient: user.Email,
		Name:      user.DisplayName(),
		Link:      s.link("/reset-password", url.Values{"token": {token}}),
	})
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	userID, err := s.tokens.ConsumeOneTime(ctx, ports.PurposePasswordReset, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("password reset")
	return nil
}

func (s *AuthService) sendVerification(ctx context.Context, user *domain.User) error {
	token := uuid.NewString()
	if err := s.tokens.IssueOneTime(ctx, ports.PurposeEmailVerification, token, user.ID, s.cfg.VerificationTTL); err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}

	s.notify(ctx, ports.Notification{
		Kind:      ports.NotifyEmailVerification,
		Recipient: user.Email,
		Name:      user.DisplayName(),
		Link:      s.link("/verify-email", url.Values{"token": {token}, "email": {user.Email}}),
	})
	return nil
}

func (s *AuthService) notify(ctx context.Context, n ports.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("kind", string(n.Kind)).Msg("failed to queue notification")
	}
}

func (s *AuthService) link(path string, q url.Values) string {
	return strings.TrimRight(s.cfg.ClientURL, "/") + path + "?" + q.Encode()
}
