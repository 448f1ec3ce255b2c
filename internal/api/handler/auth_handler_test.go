package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillbridge/jobmatch/internal/api/middleware"
	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

type stubAuthService struct {
	signUpJobSeekerFn func(ctx context.Context, in validation.JobSeekerSignup) (*domain.User, error)
	signUpEmployerFn  func(ctx context.Context, in validation.EmployerSignup) (*domain.User, error)
	signUpAdminFn     func(ctx context.Context, in validation.AdminSignup) (*domain.User, error)
	signInFn          func(ctx context.Context, in ports.SignInInput) (*ports.SessionResult, error)
	meFn              func(ctx context.Context, userID string) (*domain.User, error)
	signOutFn         func(ctx context.Context, claims ports.TokenClaims) error
	refreshFn         func(ctx context.Context, claims ports.TokenClaims) (*ports.SessionResult, error)
	verifyEmailFn     func(ctx context.Context, token, email string) (*ports.SessionResult, error)
	resendFn          func(ctx context.Context, email string) error
	forgotFn          func(ctx context.Context, email string) error
	resetFn           func(ctx context.Context, token, password string) error
}

func (s *stubAuthService) SignUpJobSeeker(ctx context.Context, in validation.JobSeekerSignup) (*domain.User, error) {
	return s.signUpJobSeekerFn(ctx, in)
}

func (s *stubAuthService) SignUpEmployer(ctx context.Context, in validation.EmployerSignup) (*domain.User, error) {
	return s.signUpEmployerFn(ctx, in)
}

func (s *stubAuthService) SignUpAdmin(ctx context.Context, in validation.AdminSignup) (*domain.User, error) {
	return s.signUpAdminFn(ctx, in)
}

func (s *stubAuthService) SignIn(ctx context.Context, in ports.SignInInput) (*ports.SessionResult, error) {
	return s.signInFn(ctx, in)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) SignOut(ctx context.Context, claims ports.TokenClaims) error {
	return s.signOutFn(ctx, claims)
}

func (s *stubAuthService) Refresh(ctx context.Context, claims ports.TokenClaims) (*ports.SessionResult, error) {
	return s.refreshFn(ctx, claims)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, token, email string) (*ports.SessionResult, error) {
	return s.verifyEmailFn(ctx, token, email)
}

func (s *stubAuthService) ResendVerification(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return s.resetFn(ctx, token, password)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func sessionFor(role domain.Role) *ports.SessionResult {
	return &ports.SessionResult{
		Token:     "tok",
		ExpiresAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		User:      &domain.User{ID: "u1", Email: "a@uom.ac.lk", FirstName: "Ann", LastName: "Lee", Role: role, EmailVerified: true},
	}
}

const seekerBody = `{"firstName":" Nimal ","lastName":"Perera","email":" Nimal@UOM.ac.lk ","university":"UoM",` +
	`"password":"Secret1!","confirmPassword":"Secret1!","termsAccepted":true,"privacyPolicyAccepted":true}`

func TestAuthHandler_SignUpJobSeeker_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signUpJobSeekerFn: func(_ context.Context, in validation.JobSeekerSignup) (*domain.User, error) {
			if in.Email != "nimal@uom.ac.lk" || in.FirstName != "Nimal" {
				t.Fatalf("form not normalized: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, Role: domain.RoleJobSeeker}, nil
		},
	}
	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/signup/jobseeker", seekerBody)

	if err := NewAuthHandler(stub).SignUpJobSeeker(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "Job Seeker" || user["displayName"] != "Nimal Perera" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if resp["verificationRequired"] != true {
		t.Fatalf("expected verificationRequired, got %v", resp["verificationRequired"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must not be rendered")
	}
}

func TestAuthHandler_SignUpJobSeeker_ValidationFails(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signUpJobSeekerFn: func(context.Context, validation.JobSeekerSignup) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	body := strings.Replace(seekerBody, "UOM.ac.lk", "gmail.com", 1)
	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/signup/jobseeker", body)

	err := NewAuthHandler(stub).SignUpJobSeeker(c)
	var fields validation.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fe, ok := fields.Get("email"); !ok || fe.Code != validation.CodeAcademicDomain {
		t.Fatalf("expected academic_domain on email, got %+v", fields)
	}
}

func TestAuthHandler_SignUp_UserExists(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signUpJobSeekerFn: func(context.Context, validation.JobSeekerSignup) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/signup/jobseeker", seekerBody)

	if err := NewAuthHandler(stub).SignUpJobSeeker(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signInFn: func(_ context.Context, in ports.SignInInput) (*ports.SessionResult, error) {
			if in.Email != "a@uom.ac.lk" || in.Role != domain.RoleEmployer {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sessionFor(domain.RoleEmployer), nil
		},
	}
	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/signin", `{"email":"A@uom.ac.lk","password":"x","role":"Employer"}`)

	if err := NewAuthHandler(stub).SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["token"] != "tok" || resp["expiresAt"] != "2026-01-01T00:00:00Z" {
		t.Fatalf("unexpected session payload: %+v", resp)
	}
}

func TestAuthHandler_SignIn_RoleOptional(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signInFn: func(_ context.Context, in ports.SignInInput) (*ports.SessionResult, error) {
			if in.Role != 0 {
				t.Fatalf("expected no role, got %v", in.Role)
			}
			return sessionFor(domain.RoleAdmin), nil
		},
	}
	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/signin", `{"email":"a@uom.ac.lk","password":"x"}`)

	if err := NewAuthHandler(stub).SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthHandler_SignIn_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid credentials", domain.ErrInvalidCredentials},
		{"role mismatch", domain.ErrRoleMismatch},
		{"inactive", domain.ErrAccountInactive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubAuthService{
				signInFn: func(context.Context, ports.SignInInput) (*ports.SessionResult, error) {
					return nil, tc.err
				},
			}
			c, rec := jsonRequest(e, http.MethodPost, "/api/auth/signin", `{"email":"a@uom.ac.lk","password":"x","role":"Job Seeker"}`)

			if err := NewAuthHandler(stub).SignIn(c); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if rec.Body.Len() != 0 {
				t.Fatalf("handler must leave rendering to the error handler")
			}
		})
	}
}

func TestAuthHandler_SignIn_BadPayload(t *testing.T) {
	e := newEcho()
	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/signin", `{"email":`)

	err := NewAuthHandler(&stubAuthService{}).SignIn(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_SignIn_UnknownRole(t *testing.T) {
	e := newEcho()
	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/signin", `{"email":"a@uom.ac.lk","password":"x","role":"Recruiter"}`)

	err := NewAuthHandler(&stubAuthService{}).SignIn(c)
	var fields validation.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fields.Get("role"); !ok {
		t.Fatalf("expected role error, got %+v", fields)
	}
}

func withClaims(c echo.Context, claims ports.TokenClaims) echo.Context {
	// Run the real middleware with a verifier that returns claims.
	_ = middleware.Auth(fixedVerifier{claims})(func(echo.Context) error { return nil })(c)
	return c
}

type fixedVerifier struct{ claims ports.TokenClaims }

func (f fixedVerifier) VerifyToken(context.Context, string) (ports.TokenClaims, error) {
	return f.claims, nil
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		meFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return sessionFor(domain.RoleJobSeeker).User, nil
		},
	}
	c, rec := jsonRequest(e, http.MethodGet, "/api/auth/me", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer tok")
	withClaims(c, ports.TokenClaims{TokenID: "j", UserID: "u1", Role: domain.RoleJobSeeker})

	if err := NewAuthHandler(stub).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decode(t, rec); resp["id"] != "u1" || resp["role"] != "Job Seeker" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me_WithoutClaims(t *testing.T) {
	e := newEcho()
	c, _ := jsonRequest(e, http.MethodGet, "/api/auth/me", "")

	if err := NewAuthHandler(&stubAuthService{}).Me(c); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	e := newEcho()
	var revoked string
	stub := &stubAuthService{
		signOutFn: func(_ context.Context, claims ports.TokenClaims) error {
			revoked = claims.TokenID
			return nil
		},
	}
	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/signout", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer tok")
	withClaims(c, ports.TokenClaims{TokenID: "jti-9", UserID: "u1", Role: domain.RoleAdmin})

	if err := NewAuthHandler(stub).SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || revoked != "jti-9" {
		t.Fatalf("expected 204 and revocation, got %d %q", rec.Code, revoked)
	}
}

func TestAuthHandler_VerifyEmail_MissingParams(t *testing.T) {
	e := newEcho()
	c, _ := jsonRequest(e, http.MethodGet, "/api/auth/verify-email?token=abc", "")

	if err := NewAuthHandler(&stubAuthService{}).VerifyEmail(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthHandler_ForgotPassword_Accepted(t *testing.T) {
	e := newEcho()
	var got string
	stub := &stubAuthService{
		forgotFn: func(_ context.Context, email string) error {
			got = email
			return nil
		},
	}
	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/forgot-password", `{"email":" HR@Acme.lk "}`)

	if err := NewAuthHandler(stub).ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted || got != "hr@acme.lk" {
		t.Fatalf("expected 202 with normalized email, got %d %q", rec.Code, got)
	}
}

func TestAuthHandler_ResetPassword_WeakPassword(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		resetFn: func(context.Context, string, string) error {
			t.Fatalf("service must not be called")
			return nil
		},
	}
	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/reset-password", `{"token":"t","password":"password","confirmPassword":"password"}`)

	err := NewAuthHandler(stub).ResetPassword(c)
	var fields validation.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fe, ok := fields.Get("password"); !ok || fe.Code != validation.CodeWeakPassword {
		t.Fatalf("expected weak_password, got %+v", fields)
	}
}
