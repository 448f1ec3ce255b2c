package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skillbridge/jobmatch/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the SkillBridge auth API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 15s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type userPayload struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	Role        domain.Role `json:"role"`
}

func (u userPayload) identity() domain.Identity {
	return domain.NewIdentity(u.ID, u.Email, u.Role, u.DisplayName)
}

type sessionPayload struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      userPayload `json:"user"`
}

func (p sessionPayload) session() domain.Session {
	return domain.Session{Identity: p.User.identity(), Token: p.Token, ExpiresAt: p.ExpiresAt}
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	req := signInRequest{Email: creds.Email, Password: creds.Password}
	if creds.Role.Valid() {
		req.Role = creds.Role.String()
	}

	var resp sessionPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", "", req, &resp); err != nil {
		return domain.Session{}, err
	}
	return resp.session(), nil
}

// Me returns the identity the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (domain.Identity, error) {
	var resp userPayload
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &resp); err != nil {
		return domain.Identity{}, err
	}
	return resp.identity(), nil
}

// SignOut revokes token on the server.
func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signout", token, nil, nil)
}

// Refresh trades token for a fresh session. The old token is revoked.
func (c *Client) Refresh(ctx context.Context, token string) (domain.Session, error) {
	var resp sessionPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", token, nil, &resp); err != nil {
		return domain.Session{}, err
	}
	return resp.session(), nil
}

// ForgotPassword asks the server to mail a reset link. The server answers the
// same way whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
