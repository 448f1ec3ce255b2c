package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of account kinds. The zero value is not a valid role.
type Role uint8

const (
	RoleJobSeeker Role = iota + 1
	RoleEmployer
	RoleAdmin
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every valid role in display order.
var Roles = []Role{RoleJobSeeker, RoleEmployer, RoleAdmin}

// String returns the wire name used by the API and stored in MongoDB.
func (r Role) String() string {
	switch r {
	case RoleJobSeeker:
		return "Job Seeker"
	case RoleEmployer:
		return "Employer"
	case RoleAdmin:
		return "Admin"
	default:
		return ""
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r >= RoleJobSeeker && r <= RoleAdmin
}

// ParseRole accepts the wire names and the legacy lowercase aliases.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "job seeker", "jobseeker", "job_seeker":
		return RoleJobSeeker, nil
	case "employer":
		return RoleEmployer, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
