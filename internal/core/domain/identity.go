package domain

import (
	"encoding/json"
	"time"
)

// Identity is the authenticated user as seen by the rest of the system.
// Fields are unexported so an Identity can only be replaced, never patched.
type Identity struct {
	id          string
	email       string
	role        Role
	displayName string
}

func NewIdentity(id, email string, role Role, displayName string) Identity {
	return Identity{id: id, email: email, role: role, displayName: displayName}
}

func (i Identity) ID() string          { return i.id }
func (i Identity) Email() string       { return i.email }
func (i Identity) Role() Role          { return i.role }
func (i Identity) DisplayName() string { return i.displayName }

// IsZero reports whether i carries no user.
func (i Identity) IsZero() bool { return i.id == "" }

type identityJSON struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	DisplayName string `json:"displayName"`
}

func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(identityJSON{ID: i.id, Email: i.email, Role: i.role, DisplayName: i.displayName})
}

func (i *Identity) UnmarshalJSON(b []byte) error {
	var v identityJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*i = NewIdentity(v.ID, v.Email, v.Role, v.DisplayName)
	return nil
}

// Session is the live authenticated context of one client process.
type Session struct {
	Identity  Identity  `json:"identity"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the token is past its expiry at now.
// A zero ExpiresAt never expires locally; the server remains the authority.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Credentials exist only for the duration of a sign-in request.
type Credentials struct {
	Email    string
	Password string
	Role     Role
}
