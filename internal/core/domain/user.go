package domain

import (
	"strings"
	"time"
)

// AccountStatus mirrors the lifecycle flag stored on every user document.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
)

// User models a registered account. Role is fixed at signup.
type User struct {
	ID            string        `json:"id"`
	FirstName     string        `json:"firstName,omitempty"`
	LastName      string        `json:"lastName,omitempty"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	Role          Role          `json:"role"`
	Status        AccountStatus `json:"status"`
	EmailVerified bool          `json:"emailVerified"`
	LastLogin     *time.Time    `json:"lastLogin,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// DisplayName is "First Last", or the email when no name was captured
// (employers sign up with a company rather than a personal name).
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Identity returns the immutable identity snapshot handed to clients.
func (u *User) Identity() Identity {
	return NewIdentity(u.ID, u.Email, u.Role, u.DisplayName())
}

// JobSeekerProfile is created alongside a job seeker account.
type JobSeekerProfile struct {
	UserID       string `json:"userId"`
	University   string `json:"university"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
}

// EmployerProfile is created alongside an employer account.
type EmployerProfile struct {
	UserID             string `json:"userId"`
	CompanyName        string `json:"companyName"`
	ContactPersonName  string `json:"contactPersonName"`
	CompanySize        string `json:"companySize"`
	Industry           string `json:"industry"`
	CompanyWebsite     string `json:"companyWebsite,omitempty"`
	CompanyDescription string `json:"companyDescription,omitempty"`
}
