package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
)

type stubVerifier struct {
	verifyFn func(ctx context.Context, raw string) (ports.TokenClaims, error)
}

func (s stubVerifier) VerifyToken(ctx context.Context, raw string) (ports.TokenClaims, error) {
	return s.verifyFn(ctx, raw)
}

func acceptToken(want string, claims ports.TokenClaims) stubVerifier {
	return stubVerifier{verifyFn: func(_ context.Context, raw string) (ports.TokenClaims, error) {
		if raw != want {
			return ports.TokenClaims{}, domain.ErrInvalidToken
		}
		return claims, nil
	}}
}

func runAuth(t *testing.T, v ports.TokenVerifier, header string, next echo.HandlerFunc) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	return Auth(v)(next)(c)
}

func mustNotCallNext(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	want := ports.TokenClaims{TokenID: "jti", UserID: "u1", Email: "a@acme.lk", Role: domain.RoleEmployer}

	called := false
	err := runAuth(t, acceptToken("good", want), "Bearer good", func(c echo.Context) error {
		called = true
		got, ok := Claims(c)
		if !ok || got != want {
			t.Fatalf("claims not set: %+v", got)
		}
		if c.Get(RoleKey) != domain.RoleEmployer {
			t.Fatalf("role not set")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	err := runAuth(t, acceptToken("good", ports.TokenClaims{UserID: "u1", Role: domain.RoleAdmin}), "bearer good", func(c echo.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("expected lowercase scheme to pass, got %v", err)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	v := acceptToken("good", ports.TokenClaims{UserID: "u1"})

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrNotAuthenticated},
		{"wrong scheme", "Token good", domain.ErrNotAuthenticated},
		{"empty token", "Bearer ", domain.ErrNotAuthenticated},
		{"invalid token", "Bearer not-a-token", domain.ErrNotAuthenticated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := runAuth(t, v, tc.header, mustNotCallNext(t)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	v := stubVerifier{verifyFn: func(context.Context, string) (ports.TokenClaims, error) {
		return ports.TokenClaims{}, domain.ErrSessionExpired
	}}
	if err := runAuth(t, v, "Bearer old", mustNotCallNext(t)); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestAuthMiddleware_VerifierFailurePropagates(t *testing.T) {
	boom := errors.New("redis down")
	v := stubVerifier{verifyFn: func(context.Context, string) (ports.TokenClaims, error) {
		return ports.TokenClaims{}, boom
	}}
	if err := runAuth(t, v, "Bearer x", mustNotCallNext(t)); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
