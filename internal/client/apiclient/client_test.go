package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/validation"
)

func TestSignIn_Success(t *testing.T) {
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/signin", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@uoc.lk", body["email"])
		assert.Equal(t, "Secret1!", body["password"])
		assert.Equal(t, "Employer", body["role"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token":     "tok-1",
			"expiresAt": expires,
			"user": map[string]any{
				"id":          "u1",
				"email":       "ana@uoc.lk",
				"displayName": "Ana Perera",
				"role":        "Employer",
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	sess, err := c.SignIn(context.Background(), domain.Credentials{
		Email:    "ana@uoc.lk",
		Password: "Secret1!",
		Role:     domain.RoleEmployer,
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.True(t, sess.ExpiresAt.Equal(expires))
	assert.Equal(t, "u1", sess.Identity.ID())
	assert.Equal(t, domain.RoleEmployer, sess.Identity.Role())
	assert.Equal(t, "Ana Perera", sess.Identity.DisplayName())
}

func TestSignIn_OmitsUnsetRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasRole := body["role"]
		assert.False(t, hasRole)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials","code":"invalid_credentials"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SignIn(context.Background(), domain.Credentials{Email: "a@b.lk", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestErrorEnvelope_MapsCodes(t *testing.T) {
	tests := []struct {
		status int
		code   string
		want   error
	}{
		{http.StatusForbidden, "role_mismatch", domain.ErrRoleMismatch},
		{http.StatusForbidden, "account_inactive", domain.ErrAccountInactive},
		{http.StatusForbidden, "email_not_verified", domain.ErrEmailNotVerified},
		{http.StatusUnauthorized, "session_expired", domain.ErrSessionExpired},
		{http.StatusUnauthorized, "not_authenticated", domain.ErrSessionExpired},
		{http.StatusBadRequest, "invalid_token", domain.ErrInvalidToken},
		{http.StatusForbidden, "forbidden", domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"error": "nope", "code": tt.code})
			}))
			defer srv.Close()

			_, err := New(srv.URL).Me(context.Background(), "tok")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestValidationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"validation failed","code":"validation_failed","fields":[{"field":"email","code":"invalid_email","message":"bad"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SignIn(context.Background(), domain.Credentials{Email: "x"})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "validation_failed", apiErr.Code)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "email", apiErr.Fields[0].Field)

	var fields validation.FieldErrors
	require.True(t, errors.As(err, &fields))
	got, ok := fields.Get("email")
	require.True(t, ok)
	assert.Equal(t, "invalid_email", got.Code)
}

func TestMe_SendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u9","email":"root@skillbridge.lk","displayName":"Root","role":"Admin"}`))
	}))
	defer srv.Close()

	id, err := New(srv.URL).Me(context.Background(), "tok-9")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, id.Role())
	assert.Equal(t, "root@skillbridge.lk", id.Email())
}

func TestSignOut_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL).SignOut(context.Background(), "tok"))
}

func TestTransportFailures(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := New(url).Me(context.Background(), "tok")
		var te *TransportError
		assert.True(t, errors.As(err, &te))
	})

	t.Run("bare gateway error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := New(srv.URL).Me(context.Background(), "tok")
		var te *TransportError
		assert.True(t, errors.As(err, &te))
	})

	t.Run("context deadline", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := New(srv.URL).Me(ctx, "tok")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
