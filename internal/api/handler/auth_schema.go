package handler

import (
	"time"

	"github.com/skillbridge/jobmatch/internal/core/domain"
	"github.com/skillbridge/jobmatch/internal/core/ports"
)

// userResponse is the public view of an account.
type userResponse struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	FirstName     string      `json:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty"`
	DisplayName   string      `json:"displayName"`
	Role          domain.Role `json:"role" swaggertype:"string" enums:"Job Seeker,Employer,Admin"`
	EmailVerified bool        `json:"emailVerified"`
	LastLogin     *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		DisplayName:   u.DisplayName(),
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
	}
}

// sessionResponse is returned by every endpoint that issues a token.
type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

func toSessionResponse(s *ports.SessionResult) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      toUserResponse(s.User),
	}
}

// signupResponse tells the client whether it must verify the address before
// signing in.
type signupResponse struct {
	User                 userResponse `json:"user"`
	VerificationRequired bool         `json:"verificationRequired"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorDoc documents the error envelope rendered by the API error handler.
type errorDoc struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Fields []struct {
		Field   string `json:"field"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"fields,omitempty"`
}
