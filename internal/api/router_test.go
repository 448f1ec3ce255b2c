package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/skillbridge/jobmatch/internal/api/handler"
	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

// stubAuth embeds the interface so tests only implement what they call.
type stubAuth struct {
	ports.AuthService
	signInFn func(ctx context.Context, in ports.SignInInput) (*ports.SessionResult, error)
	meFn     func(ctx context.Context, userID string) (*domain.User, error)
	resetFn  func(ctx context.Context, token, password string) error
	adminFn  func(ctx context.Context, in validation.AdminSignup) (*domain.User, error)
}

func (s *stubAuth) SignIn(ctx context.Context, in ports.SignInInput) (*ports.SessionResult, error) {
	return s.signInFn(ctx, in)
}

func (s *stubAuth) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuth) ResetPassword(ctx context.Context, token, password string) error {
	return s.resetFn(ctx, token, password)
}

func (s *stubAuth) SignUpAdmin(ctx context.Context, in validation.AdminSignup) (*domain.User, error) {
	return s.adminFn(ctx, in)
}

// tokenTable maps raw bearer tokens to verification results.
type tokenTable map[string]ports.TokenClaims

func (t tokenTable) VerifyToken(_ context.Context, raw string) (ports.TokenClaims, error) {
	if raw == "expired" {
		return ports.TokenClaims{}, domain.ErrSessionExpired
	}
	claims, ok := t[raw]
	if !ok {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}
	return claims, nil
}

var testTokens = tokenTable{
	"seeker":   {TokenID: "j1", UserID: "u1", Role: domain.RoleJobSeeker},
	"employer": {TokenID: "j2", UserID: "u2", Role: domain.RoleEmployer},
	"admin":    {TokenID: "j3", UserID: "u3", Role: domain.RoleAdmin},
}

func newTestServer(t *testing.T, svc *stubAuth, rateLimit float64) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Auth:      svc,
		Verifier:  testTokens,
		Validator: validation.New(),
		Health:    map[string]handler.Pinger{},
		Log:       zerolog.Nop(),
		RateLimit: rateLimit,
		Registry:  prometheus.NewRegistry(),
	})
}

type apiError struct {
	Error  string                 `json:"error"`
	Code   string                 `json:"code"`
	Fields validation.FieldErrors `json:"fields"`
}

func do(t *testing.T, h http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, apiError) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env apiError
	if rec.Code >= 400 && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid error envelope %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestRouter_SignInErrorCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"role mismatch", domain.ErrRoleMismatch, http.StatusForbidden, "role_mismatch"},
		{"inactive", domain.ErrAccountInactive, http.StatusForbidden, "account_inactive"},
		{"unverified", domain.ErrEmailNotVerified, http.StatusForbidden, "email_not_verified"},
		{"unexpected", errors.New("mongo down"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubAuth{signInFn: func(context.Context, ports.SignInInput) (*ports.SessionResult, error) {
				return nil, tc.err
			}}
			rec, env := do(t, newTestServer(t, svc, 0), http.MethodPost, "/api/auth/signin", "",
				`{"email":"a@uom.ac.lk","password":"x","role":"Employer"}`)

			if rec.Code != tc.status || env.Code != tc.code {
				t.Fatalf("expected %d %s, got %d %+v", tc.status, tc.code, rec.Code, env)
			}
			if tc.status == http.StatusInternalServerError && strings.Contains(env.Error, "mongo") {
				t.Fatalf("internal error leaked: %q", env.Error)
			}
		})
	}
}

func TestRouter_ValidationEnvelope(t *testing.T) {
	rec, env := do(t, newTestServer(t, &stubAuth{}, 0), http.MethodPost, "/api/auth/signin", "", `{"email":"nope"}`)

	if rec.Code != http.StatusUnprocessableEntity || env.Code != "validation_failed" {
		t.Fatalf("expected 422 validation_failed, got %d %+v", rec.Code, env)
	}
	if _, ok := env.Fields.Get("email"); !ok {
		t.Fatalf("expected email field error, got %+v", env.Fields)
	}
	if _, ok := env.Fields.Get("password"); !ok {
		t.Fatalf("expected password field error, got %+v", env.Fields)
	}
}

func TestRouter_SessionRoutesRequireToken(t *testing.T) {
	svc := &stubAuth{meFn: func(_ context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Email: "a@uom.ac.lk", Role: domain.RoleJobSeeker}, nil
	}}
	h := newTestServer(t, svc, 0)

	tests := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{"no token", "", http.StatusUnauthorized, "not_authenticated"},
		{"garbage token", "garbage", http.StatusUnauthorized, "not_authenticated"},
		{"expired token", "expired", http.StatusUnauthorized, "session_expired"},
		{"valid token", "seeker", http.StatusOK, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodGet, "/api/auth/me", tc.token, "")
			if rec.Code != tc.status || env.Code != tc.code {
				t.Fatalf("expected %d %q, got %d %+v", tc.status, tc.code, rec.Code, env)
			}
		})
	}
}

func TestRouter_AdminSignupGuard(t *testing.T) {
	called := false
	svc := &stubAuth{adminFn: func(_ context.Context, in validation.AdminSignup) (*domain.User, error) {
		called = true
		return &domain.User{ID: "u9", Email: in.Email, Role: domain.RoleAdmin, EmailVerified: true}, nil
	}}
	h := newTestServer(t, svc, 0)
	body := `{"firstName":"Ada","lastName":"Admin","email":"ada@skillbridge.lk","password":"Secret1!"}`

	if rec, env := do(t, h, http.MethodPost, "/api/auth/signup/admin", "", body); rec.Code != http.StatusUnauthorized || env.Code != "not_authenticated" {
		t.Fatalf("anonymous: expected 401, got %d %+v", rec.Code, env)
	}
	if rec, env := do(t, h, http.MethodPost, "/api/auth/signup/admin", "employer", body); rec.Code != http.StatusForbidden || env.Code != "forbidden" {
		t.Fatalf("employer: expected 403, got %d %+v", rec.Code, env)
	}
	if called {
		t.Fatalf("service reached without admin role")
	}
	if rec, _ := do(t, h, http.MethodPost, "/api/auth/signup/admin", "admin", body); rec.Code != http.StatusCreated {
		t.Fatalf("admin: expected 201, got %d", rec.Code)
	}
}

func TestRouter_ResetPasswordBadTokenIsNot401(t *testing.T) {
	svc := &stubAuth{resetFn: func(context.Context, string, string) error {
		return domain.ErrInvalidToken
	}}
	rec, env := do(t, newTestServer(t, svc, 0), http.MethodPost, "/api/auth/reset-password", "",
		`{"token":"stale","password":"Secret1!","confirmPassword":"Secret1!"}`)

	if rec.Code != http.StatusBadRequest || env.Code != "invalid_token" {
		t.Fatalf("expected 400 invalid_token, got %d %+v", rec.Code, env)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	svc := &stubAuth{signInFn: func(context.Context, ports.SignInInput) (*ports.SessionResult, error) {
		return nil, domain.ErrInvalidCredentials
	}}
	h := newTestServer(t, svc, 2)
	body := `{"email":"a@uom.ac.lk","password":"x"}`

	for i := 0; i < 2; i++ {
		if rec, _ := do(t, h, http.MethodPost, "/api/auth/signin", "", body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}
	rec, env := do(t, h, http.MethodPost, "/api/auth/signin", "", body)
	if rec.Code != http.StatusTooManyRequests || env.Code != "rate_limited" {
		t.Fatalf("expected 429 rate_limited, got %d %+v", rec.Code, env)
	}
}

func TestRouter_NotFoundAndProbes(t *testing.T) {
	h := newTestServer(t, &stubAuth{}, 0)

	if rec, env := do(t, h, http.MethodGet, "/api/nope", "", ""); rec.Code != http.StatusNotFound || env.Code != "not_found" {
		t.Fatalf("expected 404 not_found, got %d %+v", rec.Code, env)
	}
	if rec, _ := do(t, h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected liveness 200, got %d", rec.Code)
	}
	if rec, _ := do(t, h, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected readiness 200, got %d", rec.Code)
	}
	rec, _ := do(t, h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "skillbridge_http_requests_total") {
		t.Fatalf("expected http metrics, got %d", rec.Code)
	}
}
